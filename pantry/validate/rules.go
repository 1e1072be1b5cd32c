package validate

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/dalemusser/rulebook/rules"
)

// Generic rules

func ruleRequired(value any, param string) string {
	if value == nil {
		return "required"
	}

	val := reflect.ValueOf(value)
	switch val.Kind() {
	case reflect.String:
		if strings.TrimSpace(val.String()) == "" {
			return "required"
		}
	case reflect.Slice, reflect.Map, reflect.Array:
		if val.Len() == 0 {
			return "required"
		}
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return "required"
		}
	}
	// Zero numbers and false are valid.
	return ""
}

func ruleMin(value any, param string) string {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}
	if n, ok := sizeOf(value); ok && n < limit {
		return "min"
	}
	return ""
}

func ruleMax(value any, param string) string {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}
	if n, ok := sizeOf(value); ok && n > limit {
		return "max"
	}
	return ""
}

func ruleOneOf(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	for _, opt := range strings.Fields(param) {
		if s == opt {
			return ""
		}
	}
	return "oneof"
}

// Rules bound to the rulebook. Empty strings pass so that "required"
// stays the only presence check.

func rulePassword(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if !rules.ValidatePassword(s) {
		return "password"
	}
	return ""
}

func ruleEmail(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if rules.ValidateEmail(s) != rules.ValidEmail {
		return "email"
	}
	return ""
}

func ruleURL(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if rules.ValidateURL(s) != rules.ValidURL {
		return "url"
	}
	return ""
}

func ruleCreditCard(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if rules.ValidateCreditCard(s) != rules.ValidCard {
		return "creditcard"
	}
	return ""
}

func ruleFileSize(value any, param string) string {
	n, ok := toInt(value)
	if !ok || rules.CheckFileSize(n) != rules.ValidFileSize {
		return "filesize"
	}
	return ""
}

func ruleAge(value any, param string) string {
	n, ok := toInt(value)
	if !ok || rules.VerifyAge(int(n)) != rules.AgeEligible {
		return "age"
	}
	return ""
}

// ruleDate accepts YYYY-MM-DD and checks it with rules.ValidateDate, so
// month lengths are not enforced.
func ruleDate(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "date"
	}
	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "date"
		}
		ymd[i] = n
	}

	if rules.ValidateDate(ymd[0], ymd[1], ymd[2]) != rules.ValidDate {
		return "date"
	}
	return ""
}

func ruleShippingMethod(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if !rules.ShippingMethod(s).Valid() {
		return "shipping_method"
	}
	return ""
}

func ruleRuleName(value any, param string) string {
	s := toString(value)
	if s == "" {
		return ""
	}
	if _, err := rules.Default().Lookup(s); err != nil {
		return "rulename"
	}
	return ""
}
