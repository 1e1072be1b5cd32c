// Package validate provides struct validation using struct tags, with tags
// bound to the rulebook's rules so request-shaped structs can reuse them.
//
// Basic usage:
//
//	type Signup struct {
//	    Email    string `validate:"required,email"`
//	    Password string `validate:"required,password"`
//	    Age      int    `validate:"age"`
//	}
//
//	v := validate.New()
//	if err := v.Struct(signup); err != nil {
//	    for _, e := range err.(validate.Errors) {
//	        fmt.Printf("%s: %s\n", e.Field, e.Message)
//	    }
//	}
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Validator validates struct fields using tags.
type Validator struct {
	tagName     string
	rules       map[string]RuleFunc
	messages    *MessageProvider
	mu          sync.RWMutex
	stopOnFirst bool
}

// RuleFunc is a validation rule function.
// It receives the field value and the tag parameter (if any).
// Returns an error message key if validation fails, empty string if valid.
type RuleFunc func(value any, param string) string

// Option configures the validator.
type Option func(*Validator)

// New creates a new validator with default rules.
func New(opts ...Option) *Validator {
	v := &Validator{
		tagName:  "validate",
		rules:    make(map[string]RuleFunc),
		messages: DefaultMessages(),
	}

	v.registerBuiltinRules()

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// WithTagName sets a custom tag name (default: "validate").
func WithTagName(name string) Option {
	return func(v *Validator) {
		v.tagName = name
	}
}

// WithMessages sets a custom message provider.
func WithMessages(m *MessageProvider) Option {
	return func(v *Validator) {
		v.messages = m
	}
}

// WithStopOnFirstError stops validation after the first error.
func WithStopOnFirstError() Option {
	return func(v *Validator) {
		v.stopOnFirst = true
	}
}

// RegisterRule registers a custom validation rule.
func (v *Validator) RegisterRule(name string, fn RuleFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rules[name] = fn
}

// RegisterRuleFunc registers a simple predicate as a rule.
func (v *Validator) RegisterRuleFunc(name string, fn func(value any) bool, messageKey string) {
	v.RegisterRule(name, func(value any, param string) string {
		if fn(value) {
			return ""
		}
		return messageKey
	})
}

// Struct validates a struct using its validate tags. It returns Errors
// when any field fails, nil otherwise.
func (v *Validator) Struct(s any) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validate: expected struct, got %s", val.Kind())
	}

	if errs := v.validateStruct(val, ""); len(errs) > 0 {
		return errs
	}
	return nil
}

// Var validates a single variable.
func (v *Validator) Var(value any, tag string) error {
	errs := v.validateValue(reflect.ValueOf(value), "", tag)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateStruct validates all fields of a struct, descending into nested
// structs and slices of structs.
func (v *Validator) validateStruct(val reflect.Value, prefix string) Errors {
	var errs Errors
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !field.IsExported() {
			continue
		}

		fieldName := fieldNameOf(field)
		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		errs = append(errs, v.validateValue(fieldVal, fieldName, field.Tag.Get(v.tagName))...)
		if v.stopOnFirst && len(errs) > 0 {
			return errs
		}

		switch fieldVal.Kind() {
		case reflect.Struct:
			errs = append(errs, v.validateStruct(fieldVal, fieldName)...)
		case reflect.Ptr:
			if !fieldVal.IsNil() && fieldVal.Elem().Kind() == reflect.Struct {
				errs = append(errs, v.validateStruct(fieldVal.Elem(), fieldName)...)
			}
		case reflect.Slice:
			for j := 0; j < fieldVal.Len(); j++ {
				elem := fieldVal.Index(j)
				if elem.Kind() == reflect.Ptr && !elem.IsNil() {
					elem = elem.Elem()
				}
				if elem.Kind() == reflect.Struct {
					errs = append(errs, v.validateStruct(elem, fmt.Sprintf("%s[%d]", fieldName, j))...)
				}
			}
		}

		if v.stopOnFirst && len(errs) > 0 {
			return errs
		}
	}

	return errs
}

// fieldNameOf prefers the yaml, then json, tag name over the Go name.
func fieldNameOf(field reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		if tag := field.Tag.Get(key); tag != "" {
			name := strings.Split(tag, ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
	}
	return field.Name
}

// validateValue validates a single value against rules.
func (v *Validator) validateValue(val reflect.Value, fieldName, tag string) Errors {
	if tag == "" || tag == "-" {
		return nil
	}

	var errs Errors
	rules := parseTag(tag)

	isOptional := false
	for _, r := range rules {
		if r.name == "omitempty" {
			isOptional = true
			break
		}
	}

	if isOptional && isEmpty(val) {
		return nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, rule := range rules {
		if rule.name == "omitempty" {
			continue
		}

		ruleFn, ok := v.rules[rule.name]
		if !ok {
			continue
		}

		var value any
		if val.IsValid() && val.CanInterface() {
			value = val.Interface()
		}

		msgKey := ruleFn(value, rule.param)
		if msgKey != "" {
			errs = append(errs, &Error{
				Field:   fieldName,
				Rule:    rule.name,
				Param:   rule.param,
				Value:   value,
				Message: v.messages.Get(msgKey, fieldName, rule.param),
			})

			if v.stopOnFirst {
				return errs
			}
		}
	}

	return errs
}

// rule represents a parsed validation rule.
type rule struct {
	name  string
	param string
}

// parseTag parses a validation tag into rules.
func parseTag(tag string) []rule {
	var rules []rule
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		r := rule{}
		if idx := strings.Index(part, "="); idx != -1 {
			r.name = part[:idx]
			r.param = part[idx+1:]
		} else {
			r.name = part
		}
		rules = append(rules, r)
	}
	return rules
}

// isEmpty checks if a value is empty.
func isEmpty(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	switch val.Kind() {
	case reflect.String:
		return val.String() == ""
	case reflect.Bool:
		return !val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return val.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	}

	return false
}

// registerBuiltinRules registers all built-in validation rules.
func (v *Validator) registerBuiltinRules() {
	// Generic
	v.rules["required"] = ruleRequired
	v.rules["min"] = ruleMin
	v.rules["max"] = ruleMax
	v.rules["oneof"] = ruleOneOf

	// Bound to the rulebook
	v.rules["password"] = rulePassword
	v.rules["email"] = ruleEmail
	v.rules["url"] = ruleURL
	v.rules["creditcard"] = ruleCreditCard
	v.rules["filesize"] = ruleFileSize
	v.rules["age"] = ruleAge
	v.rules["date"] = ruleDate
	v.rules["shipping_method"] = ruleShippingMethod
	v.rules["rulename"] = ruleRuleName
}

// Error represents a validation error.
type Error struct {
	Field   string
	Rule    string
	Param   string
	Value   any
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errors is a collection of validation errors.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}

	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any errors.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// FieldErrors returns all errors for a specific field.
func (e Errors) FieldErrors(field string) Errors {
	var result Errors
	for _, err := range e {
		if err.Field == field {
			result = append(result, err)
		}
	}
	return result
}

// ToMap converts errors to a map of field -> messages.
func (e Errors) ToMap() map[string][]string {
	result := make(map[string][]string)
	for _, err := range e {
		result[err.Field] = append(result[err.Field], err.Message)
	}
	return result
}

// First returns the first error or nil.
func (e Errors) First() *Error {
	if len(e) > 0 {
		return e[0]
	}
	return nil
}

var defaultValidator = New()

// Struct validates a struct using the default validator.
func Struct(s any) error {
	return defaultValidator.Struct(s)
}

// Var validates a variable using the default validator.
func Var(value any, tag string) error {
	return defaultValidator.Var(value, tag)
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

// toInt converts a value to int64.
func toInt(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int64(val.Float()), true
	case reflect.String:
		if i, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// sizeOf returns the comparable size of a value: character count for
// strings, length for collections, the value itself for numbers.
func sizeOf(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.String:
		return float64(utf8.RuneCountInString(val.String())), true
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(val.Len()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	}
	return 0, false
}
