package apiserver

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/farms/common"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	arg := &Argument{
		args: args,
	}
	return arg
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

// Int returns a int value of the index
func (arg *Argument) Int(index int) (int, error) {
	if index < 0 || index >= len(arg.args) {
		return 0, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return 0, errors.WithStack(ErrInvalidArgumentType)
	}

	n, err := strconv.ParseInt(fmt.Sprintf("%v", a), 10, 32)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(n), nil
}

// Uint8 returns a uint8 value of the index
func (arg *Argument) Uint8(index int) (uint8, error) {
	if index < 0 || index >= len(arg.args) {
		return 0, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return 0, errors.WithStack(ErrInvalidArgumentType)
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 8)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return uint8(n), nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	if index < 0 || index >= len(arg.args) {
		return 0, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return 0, errors.WithStack(ErrInvalidArgumentType)
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return uint64(n), nil
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	if index < 0 || index >= len(arg.args) {
		return "", errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return "", errors.WithStack(ErrInvalidArgumentType)
	}
	return fmt.Sprintf("%v", a), nil
}

// Map returns a map value of the index
func (arg *Argument) Map(index int) (map[string]interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	switch reflect.TypeOf(a).Kind() {
	case reflect.Map:
		s := reflect.ValueOf(a)

		r := map[string]interface{}{}
		mi := s.MapRange()
		for mi.Next() {
			k := mi.Key().Interface()
			v := mi.Value().Interface()
			r[fmt.Sprintf("%v", k)] = v
		}
		return r, nil
	}
	return nil, errors.WithStack(ErrInvalidArgumentType)
}

// Address returns a hex address value of the index
func (arg *Argument) Address(index int) (common.Address, error) {
	str, err := arg.String(index)
	if err != nil {
		return common.ZeroAddr, err
	}
	return common.ParseAddress(str)
}

// Bool returns a bool value of the index
func (arg *Argument) Bool(index int) (bool, error) {
	str, err := arg.String(index)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return b, nil
}
