// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Enricher keeps a structure value of the type T and allows to build it in layers: the
	// defaults, then a file, then the environment variables.
	//
	// The following contract is applied to the type T:
	//   - only the exported fields are updated
	//   - a field may be addressed by its name or by its JSON name annotation, for example,
	//     Capacity int `json:"cap"` may be addressed either as "capacity" or "cap"
	//   - the names are case-insensitive
	//   - YAML files use the same (JSON) annotations
	Enricher[T any] interface {
		// LoadFromFile loads the structure fields from the YAML (.yaml, .yml) or JSON (.json)
		// file. The format is defined by the file extension. Empty fileName is ignored.
		LoadFromFile(fileName string) error

		// LoadFromJSONFile unmarshals the jsonFileName content as JSON. Empty file name is ignored.
		LoadFromJSONFile(jsonFileName string) error

		// LoadFromYAMLFile unmarshals the yamlFileName content as YAML. Empty file name is ignored.
		LoadFromYAMLFile(yamlFileName string) error

		// ApplyOther overwrites the current value fields by the non-zero fields of
		// the other enricher value. Nested structures are applied field by field.
		ApplyOther(other Enricher[T]) error

		// ApplyEnvVariables applies the environment variables which names start from prefix.
		// The rest of the variable name is the path to the field, separated by sep. For
		// example, for the prefix "LRUCACHE" and sep "_", the variable LRUCACHE_SOAK_WORKERS=4
		// sets the field Soak.Workers to 4.
		//
		// The values are JSON values, but strings may be provided without quotes.
		ApplyEnvVariables(prefix, sep string) error

		// ApplyKeyValues applies the key-value pairs the same way as ApplyEnvVariables does
		ApplyKeyValues(prefix, sep string, keyValues map[string]string)

		// Value returns the enricher current value
		Value() T
	}

	enricher[T any] struct {
		log logging.Logger
		val T
	}
)

// NewEnricher constructs new Enricher for the type T, which must be a struct
func NewEnricher[T any](val T) Enricher[T] {
	tp := reflect.TypeOf(val)
	if tp == nil || tp.Kind() != reflect.Struct {
		panic(fmt.Sprintf("only structs are acceptable in the Enricher, but got %v", tp))
	}
	return newEnricher(val)
}

func newEnricher[T any](val T) *enricher[T] {
	e := new(enricher[T])
	e.val = val
	e.log = logging.NewLogger("config.enricher." + reflect.TypeOf(val).Name())
	return e
}

func (e *enricher[T]) LoadFromFile(fileName string) error {
	if fileName == "" {
		e.log.Debugf("no file name is provided, nothing to load")
		return nil
	}
	fn := strings.ToLower(strings.TrimSpace(fileName))
	switch {
	case strings.HasSuffix(fn, ".yaml"), strings.HasSuffix(fn, ".yml"):
		return e.LoadFromYAMLFile(fileName)
	case strings.HasSuffix(fn, ".json"):
		return e.LoadFromJSONFile(fileName)
	}
	return fmt.Errorf("cannot recognize file format %s, expecting .json or .yaml: %w", fileName, errors.ErrInvalid)
}

func (e *enricher[T]) LoadFromJSONFile(jsonFileName string) error {
	return e.loadFile(jsonFileName, "JSON", json.Unmarshal)
}

func (e *enricher[T]) LoadFromYAMLFile(yamlFileName string) error {
	return e.loadFile(yamlFileName, "YAML", func(buf []byte, v any) error { return yaml.Unmarshal(buf, v) })
}

func (e *enricher[T]) loadFile(fileName, format string, unmarshalF func([]byte, any) error) error {
	if fileName == "" {
		return nil
	}
	e.log.Infof("reading %s data from %s", format, fileName)
	buf, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("the file %s is not found: %w", fileName, errors.ErrNotExist)
		}
		return fmt.Errorf("could not read file %s: %w", fileName, err)
	}
	if err = unmarshalF(buf, &e.val); err != nil {
		return fmt.Errorf("could not unmarshal %s file %s: %w", format, fileName, err)
	}
	return nil
}

func (e *enricher[T]) ApplyOther(other Enricher[T]) error {
	oe, ok := other.(*enricher[T])
	if !ok {
		return fmt.Errorf("unsupported Enricher implementation %T: %w", other, errors.ErrInvalid)
	}
	applyValues(reflect.ValueOf(&oe.val).Elem(), reflect.ValueOf(&e.val).Elem())
	return nil
}

func (e *enricher[T]) ApplyEnvVariables(prefix, sep string) error {
	e.log.Infof("apply environment variables with the prefix %s", prefix)
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	e.ApplyKeyValues(prefix, sep, env)
	return nil
}

func (e *enricher[T]) ApplyKeyValues(prefix, sep string, keyValues map[string]string) {
	sep = strings.ToUpper(sep)
	pfx := ""
	if prefix != "" {
		pfx = strings.ToUpper(prefix) + sep
	}
	for key, value := range keyValues {
		key = strings.ToUpper(key)
		if !strings.HasPrefix(key, pfx) || len(key) == len(pfx) {
			continue
		}
		ok, err := assign(reflect.ValueOf(&e.val).Elem(), strings.Split(key[len(pfx):], sep), value)
		if err != nil {
			e.log.Warnf("could not apply %s=%s: %v", key, value, err)
			continue
		}
		e.log.Debugf("applying variable %s: %t", key, ok)
	}
}

func (e *enricher[T]) Value() T {
	return e.val
}

// applyValues sets the non-zero values of other to target. Both must be settable values of the same type.
func applyValues(other, target reflect.Value) {
	if other.IsZero() {
		return
	}
	switch other.Kind() {
	case reflect.Ptr:
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		applyValues(other.Elem(), target.Elem())
	case reflect.Struct:
		for i := 0; i < other.NumField(); i++ {
			if target.Field(i).CanSet() {
				applyValues(other.Field(i), target.Field(i))
			}
		}
	default:
		target.Set(other)
	}
}

// assign sets the field of the struct s addressed by path (upper-cased field names or
// aliases) to the value v. The nil pointers on the way are allocated only if the field is
// found. It returns true if the field is found and set.
func assign(s reflect.Value, path []string, v string) (bool, error) {
	if len(path) == 0 || path[0] == "" {
		return false, nil
	}
	tp := s.Type()
	for i := 0; i < tp.NumField(); i++ {
		sf := tp.Field(i)
		if !sf.IsExported() || (strings.ToUpper(sf.Name) != path[0] && getAlias(sf.Tag) != path[0]) {
			continue
		}
		f := s.Field(i)
		if len(path) == 1 {
			return true, setFieldValueByString(f, v)
		}
		switch {
		case f.Kind() == reflect.Struct:
			return assign(f, path[1:], v)
		case f.Kind() == reflect.Ptr && f.Type().Elem().Kind() == reflect.Struct:
			if !f.IsNil() {
				return assign(f.Elem(), path[1:], v)
			}
			nv := reflect.New(f.Type().Elem())
			ok, err := assign(nv.Elem(), path[1:], v)
			if ok && err == nil {
				f.Set(nv)
			}
			return ok, err
		}
		return false, nil
	}
	return false, nil
}

// setFieldValueByString sets s to the field. Numerical and string values are
// supported as is, all other types should be provided in the JSON format.
func setFieldValueByString(field reflect.Value, s string) error {
	if len(s) == 0 {
		return nil
	}
	if isStringUnderlying(field.Type()) && !isQuoted(s) {
		s = strconv.Quote(s)
	}
	obj := reflect.New(field.Type())
	if err := json.Unmarshal([]byte(s), obj.Interface()); err != nil {
		return err
	}
	field.Set(obj.Elem())
	return nil
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

func isStringUnderlying(tp reflect.Type) bool {
	if tp.Kind() == reflect.Ptr {
		return isStringUnderlying(tp.Elem())
	}
	return tp.Kind() == reflect.String
}

// getAlias returns the upper-cased JSON name of the field, if specified
func getAlias(tag reflect.StructTag) string {
	name, _, _ := strings.Cut(tag.Get("json"), ",")
	return strings.ToUpper(name)
}
