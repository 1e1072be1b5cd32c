package rules

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
)

// Args carries untyped rule arguments by parameter name, as decoded from
// YAML, JSON or the command line.
type Args map[string]any

// argReader pulls typed values out of Args. The first failure is kept and
// later reads become no-ops, so a rule can read every parameter and check
// Err once.
type argReader struct {
	args Args
	err  error
}

func (a *argReader) fail(name, format string, v ...any) {
	if a.err != nil {
		return
	}
	a.err = apperr.InvalidArgument(fmt.Sprintf("argument %q: ", name)+fmt.Sprintf(format, v...)).
		WithDetail("param", name)
}

func (a *argReader) get(name string) (any, bool) {
	if a.err != nil {
		return nil, false
	}
	v, ok := a.args[name]
	if !ok {
		a.fail(name, "is required")
		return nil, false
	}
	return v, true
}

// Err returns the first conversion failure, if any.
func (a *argReader) Err() error {
	return a.err
}

func (a *argReader) Int(name string) int {
	v, ok := a.get(name)
	if !ok {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		a.fail(name, "expected an integer, got %v", v)
	}
	return int(n)
}

func (a *argReader) Int64(name string) int64 {
	v, ok := a.get(name)
	if !ok {
		return 0
	}
	n, ok := toInt(v)
	if !ok {
		a.fail(name, "expected an integer, got %v", v)
	}
	return n
}

func (a *argReader) Float(name string) float64 {
	v, ok := a.get(name)
	if !ok {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		a.fail(name, "expected a number, got %v", v)
	}
	return f
}

func (a *argReader) String(name string) string {
	v, ok := a.get(name)
	if !ok {
		return ""
	}
	if v == nil {
		a.fail(name, "is required")
		return ""
	}
	return toString(v)
}

func (a *argReader) Bool(name string) bool {
	v, ok := a.get(name)
	if !ok {
		return false
	}
	b, ok := toBool(v)
	if !ok {
		a.fail(name, "expected true or false, got %v", v)
	}
	return b
}

// records reads a list of mappings, e.g. [{quantity: 3, price: 10}], and
// hands each element to fn with its own reader.
func (a *argReader) records(name string, fn func(i int, r *argReader)) {
	v, ok := a.get(name)
	if !ok {
		return
	}

	list := reflect.ValueOf(v)
	if list.Kind() != reflect.Slice && list.Kind() != reflect.Array {
		a.fail(name, "expected a list, got %v", v)
		return
	}

	for i := 0; i < list.Len(); i++ {
		m, ok := toArgs(list.Index(i).Interface())
		if !ok {
			a.fail(name, "element %d: expected a mapping", i)
			return
		}
		r := &argReader{args: m}
		fn(i, r)
		if r.err != nil {
			a.fail(name, "element %d: %s", i, apperr.From(r.err).Message)
			return
		}
	}
}

func (a *argReader) OrderItems(name string) []OrderItem {
	var items []OrderItem
	a.records(name, func(_ int, r *argReader) {
		items = append(items, OrderItem{Quantity: r.Int("quantity"), Price: r.Float("price")})
	})
	return items
}

func (a *argReader) Parcels(name string) []Parcel {
	var parcels []Parcel
	a.records(name, func(_ int, r *argReader) {
		parcels = append(parcels, Parcel{Weight: r.Float("weight")})
	})
	return parcels
}

// toArgs accepts the mapping shapes produced by yaml.v3 and encoding/json.
func toArgs(v any) (Args, bool) {
	switch m := v.(type) {
	case Args:
		return m, true
	case map[string]any:
		return Args(m), true
	case map[any]any:
		out := make(Args, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// toString converts a value to string.
func toString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toInt converts a value to int64. Floats must be integral.
func toInt(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if val.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := val.Float()
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	case reflect.String:
		if i, err := strconv.ParseInt(strings.TrimSpace(val.String()), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// toFloat converts a value to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.String:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val.String()), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// toBool converts a value to bool.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, true
		}
	}
	return false, false
}
