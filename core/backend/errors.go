package backend

import "github.com/pkg/errors"

// errors
var (
	ErrNotExistDriver = errors.New("not exist driver")
	ErrNotExistKey    = errors.New("not exist key")
	ErrConflict       = errors.New("transaction conflict")
	ErrClosed         = errors.New("store closed")
	ErrReadOnly       = errors.New("read only transaction")
)

// IsNotExist reports whether the error means a missing key
func IsNotExist(err error) bool {
	return errors.Cause(err) == ErrNotExistKey
}
