package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Format is the encoding of a config source
type Format int

// formats
const (
	TOML Format = iota
	YAML
)

// ErrUnsupportedField is returned when an environment variable targets a field of an unsupported kind
var ErrUnsupportedField = errors.New("unsupported config field")

// FormatOf returns the format of the config file by its extension, toml by default
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return TOML
	}
}

// LoadFile parse the config from the file of the path
func LoadFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	return LoadReader(file, FormatOf(path), v)
}

// LoadString parse the config from the string
func LoadString(data string, f Format, v interface{}) error {
	return LoadReader(bytes.NewReader([]byte(data)), f, v)
}

// LoadReader parse the config from the file of the reader
func LoadReader(r io.Reader, f Format, v interface{}) error {
	switch f {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
			return errors.WithStack(err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(v); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// LoadEnv overrides the fields of v by the environment.
// The variables of the dotenv files are loaded first without replacing the
// existing ones. A field Name is read from PREFIX_NAME, or from PREFIX_ and
// the upper cased env tag when the field has one.
func LoadEnv(prefix string, v interface{}, dotenvs ...string) error {
	for _, path := range dotenvs {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WithStack(err)
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.Wrap(ErrUnsupportedField, rv.Type().String())
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name := sf.Tag.Get("env")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		key := strings.ToUpper(prefix + "_" + name)
		str, has := os.LookupEnv(key)
		if !has {
			continue
		}
		if err := setField(rv.Field(i), str); err != nil {
			return errors.Wrap(err, key)
		}
	}
	return nil
}

func setField(fv reflect.Value, str string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(str)
	case reflect.Bool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return errors.WithStack(err)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(str, 10, fv.Type().Bits())
		if err != nil {
			return errors.WithStack(err)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(str, 10, fv.Type().Bits())
		if err != nil {
			return errors.WithStack(err)
		}
		fv.SetUint(n)
	default:
		return errors.WithStack(ErrUnsupportedField)
	}
	return nil
}
