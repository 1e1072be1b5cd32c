// Package casebook runs decision tables against the rules registry.
//
// A case table is a YAML or JSON file listing rule invocations and the
// label, number or error code each one is expected to produce:
//
//	name: class exercises
//	cases:
//	  - name: email at 5-char boundary
//	    rule: validate_email
//	    args: {email: "a@b.c"}
//	    want: Valid Email
//	  - rule: calculate_items_shipping_cost
//	    args: {items: [{weight: 5}], method: invalid}
//	    want_error: unknown_shipping_method
//
// Load reads and validates a table; Runner evaluates it and returns a
// Report that can be saved as CSV or XLSX.
package casebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
	"github.com/dalemusser/rulebook/pantry/validate"
	"github.com/dalemusser/rulebook/rules"
)

// Case is one row of a decision table. Exactly one of Want and WantError
// is set.
type Case struct {
	Name      string     `yaml:"name" json:"name"`
	Rule      string     `yaml:"rule" json:"rule" validate:"required,rulename"`
	Args      rules.Args `yaml:"args" json:"args"`
	Want      any        `yaml:"want" json:"want"`
	WantError string     `yaml:"want_error" json:"want_error"`
}

// Label returns the case name, or rule#index when the case is unnamed.
func (c Case) Label(index int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s#%d", c.Rule, index)
}

// Book is a named decision table.
type Book struct {
	Name  string `yaml:"name" json:"name"`
	Cases []Case `yaml:"cases" json:"cases" validate:"required,min=1"`
}

// Format selects the decoder for a case table.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads and validates the case table at path. Rule names are checked
// against reg, or the default registry when reg is nil.
func Load(path string, reg *rules.Registry) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("casebook: read %s: %w", path, err)
	}
	book, err := Parse(data, FormatOf(path), reg)
	if err != nil {
		return nil, fmt.Errorf("casebook: %s: %w", path, err)
	}
	if book.Name == "" {
		book.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return book, nil
}

// Parse decodes a case table and validates it. Unknown keys are rejected.
// Structural problems are reported together as a validation_failed error
// whose "errors" detail lists each field. A nil reg means rules.Default().
func Parse(data []byte, format Format, reg *rules.Registry) (*Book, error) {
	if reg == nil {
		reg = rules.Default()
	}

	var book Book
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&book); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&book); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}

	if err := check(&book, reg); err != nil {
		return nil, err
	}
	return &book, nil
}

// bookValidator resolves the rulename tag against reg instead of the
// default registry.
func bookValidator(reg *rules.Registry) *validate.Validator {
	v := validate.New()
	v.RegisterRuleFunc("rulename", func(value any) bool {
		name, _ := value.(string)
		if name == "" {
			return true
		}
		_, err := reg.Lookup(name)
		return err == nil
	}, "rulename")
	return v
}

func check(book *Book, reg *rules.Registry) error {
	ve := apperr.NewValidationErrors()

	if err := bookValidator(reg).Struct(book); err != nil {
		if errs, ok := err.(validate.Errors); ok {
			for _, e := range errs {
				ve.AddWithCode(e.Field, e.Message, e.Rule)
			}
		} else {
			return err
		}
	}

	for i, c := range book.Cases {
		field := fmt.Sprintf("cases[%d]", i)
		switch {
		case c.Want == nil && c.WantError == "":
			ve.AddWithCode(field, "one of want or want_error is required", "expectation")
		case c.Want != nil && c.WantError != "":
			ve.AddWithCode(field, "want and want_error are mutually exclusive", "expectation")
		}
	}

	if ve.HasErrors() {
		return ve.ToError()
	}
	return nil
}
