package casebook

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultTolerance is the absolute tolerance for numeric expectations.
const DefaultTolerance = 1e-9

// matches reports whether a rule result equals the expected value. Numbers
// compare within tol regardless of their Go type; labels and booleans
// compare exactly.
func matches(got, want any, tol float64) bool {
	if gf, ok := number(got); ok {
		wf, ok := number(want)
		return ok && math.Abs(gf-wf) <= tol
	}
	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && g == w
	case bool:
		w, ok := want.(bool)
		return ok && g == w
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// render formats a result or expectation for the report.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
