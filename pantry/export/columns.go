// export/columns.go
package export

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Common errors.
var (
	ErrInvalidData = errors.New("export: data must be a slice of structs")
	ErrRowWidth    = errors.New("export: row width does not match headers")
)

// column is one exported struct field and the header it renders under.
type column struct {
	index int
	name  string
}

// columnsOf lists the exported fields of t in declaration order. The
// header comes from tag (csv or excel), then json, then the field name.
// A tag value of "-" skips the field.
func columnsOf(t reflect.Type, tag string) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if v := field.Tag.Get(tag); v != "" {
			if v == "-" {
				continue
			}
			name = strings.Split(v, ",")[0]
		} else if v := field.Tag.Get("json"); v != "" && v != "-" {
			name = strings.Split(v, ",")[0]
		}
		cols = append(cols, column{index: i, name: name})
	}
	return cols
}

// structRows walks a slice (or pointer to slice) of structs or struct
// pointers and calls emit once per element with its column values.
func structRows(data any, tag string, emit func(cols []column, values []reflect.Value)) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	t := v.Type().Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ErrInvalidData
	}

	cols := columnsOf(t, tag)
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		values := make([]reflect.Value, len(cols))
		for j, c := range cols {
			values[j] = elem.Field(c.index)
		}
		emit(cols, values)
	}
	return nil
}

func headerNames(cols []column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// formatValue renders v as CSV text.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch val := v.Interface().(type) {
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.RFC3339)
	case time.Duration:
		return val.String()
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// cellValue unwraps v into something excelize can store natively.
func cellValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch val := v.Interface().(type) {
	case time.Time:
		return val
	case time.Duration:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}
	return v.Interface()
}
