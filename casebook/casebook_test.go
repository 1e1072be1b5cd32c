package casebook

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
	"github.com/dalemusser/rulebook/rules"
)

func TestLoadClassExercises(t *testing.T) {
	book, err := Load(filepath.Join("testdata", "class_exercises.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, "class_exercises", book.Name)
	assert.Len(t, book.Cases, 130)

	seen := map[string]bool{}
	for _, c := range book.Cases {
		seen[c.Rule] = true
	}
	assert.Len(t, seen, len(rules.Default().Names()), "every rule should be covered")
}

func TestParseYAML(t *testing.T) {
	src := `
name: sample
cases:
  - name: boundary email
    rule: validate_email
    args: {email: "a@b.c"}
    want: Valid Email
  - rule: calculate_items_shipping_cost
    args: {items: [{weight: 5}], method: invalid}
    want_error: unknown_shipping_method
`
	book, err := Parse([]byte(src), FormatYAML, nil)
	require.NoError(t, err)

	want := &Book{
		Name: "sample",
		Cases: []Case{
			{Name: "boundary email", Rule: "validate_email", Args: rules.Args{"email": "a@b.c"}, Want: "Valid Email"},
			{
				Rule:      "calculate_items_shipping_cost",
				Args:      rules.Args{"items": []any{rules.Args{"weight": 5}}, "method": "invalid"},
				WantError: "unknown_shipping_method",
			},
		},
	}
	if diff := cmp.Diff(want, book); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "calculate_items_shipping_cost#1", book.Cases[1].Label(1))

	got, err := rules.Default().Eval(book.Cases[0].Rule, book.Cases[0].Args)
	require.NoError(t, err)
	assert.Equal(t, rules.ValidEmail, got)

	_, err = rules.Default().Eval(book.Cases[1].Rule, book.Cases[1].Args)
	assert.Equal(t, "unknown_shipping_method", apperr.CodeOf(err))

	book.Cases[1].Args["method"] = "express"
	got, err = rules.Default().Eval(book.Cases[1].Rule, book.Cases[1].Args)
	require.NoError(t, err)
	assert.Equal(t, 20.0, got)
}

func TestParseChecksRulesAgainstRegistry(t *testing.T) {
	ageOnly, err := rules.Default().Lookup("verify_age")
	require.NoError(t, err)
	reg := rules.NewRegistry(ageOnly)

	src := []byte("cases:\n  - rule: verify_age\n    args: {age: 18}\n    want: Eligible\n")
	book, err := Parse(src, FormatYAML, reg)
	require.NoError(t, err)
	assert.Len(t, book.Cases, 1)

	_, err = Parse([]byte("cases:\n  - rule: validate_email\n    args: {email: a@b.c}\n    want: Valid Email\n"), FormatYAML, reg)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidationFailed, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "validation")

	fieldErrs, ok := apperr.From(err).Details["errors"].([]apperr.FieldError)
	require.True(t, ok)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "cases[0].rule", fieldErrs[0].Field)
}

func TestParseJSON(t *testing.T) {
	src := `{"name": "j", "cases": [{"rule": "verify_age", "args": {"age": 18}, "want": "Eligible"}]}`
	book, err := Parse([]byte(src), FormatJSON, nil)
	require.NoError(t, err)
	require.Len(t, book.Cases, 1)
	assert.Equal(t, 18.0, book.Cases[0].Args["age"])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		fields []string
	}{
		{
			name:   "no cases",
			src:    "name: empty\ncases: []\n",
			fields: []string{"cases"},
		},
		{
			name:   "unknown rule",
			src:    "cases:\n  - rule: no_such_rule\n    want: x\n",
			fields: []string{"cases[0].rule"},
		},
		{
			name:   "missing expectation",
			src:    "cases:\n  - rule: verify_age\n    args: {age: 3}\n",
			fields: []string{"cases[0]"},
		},
		{
			name:   "both expectations",
			src:    "cases:\n  - rule: verify_age\n    args: {age: 3}\n    want: Eligible\n    want_error: invalid_argument\n",
			fields: []string{"cases[0]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), FormatYAML, nil)
			require.Error(t, err)
			assert.Equal(t, apperr.CodeValidationFailed, apperr.CodeOf(err))

			e := apperr.From(err)
			fieldErrs, ok := e.Details["errors"].([]apperr.FieldError)
			require.True(t, ok)
			for _, f := range tt.fields {
				found := false
				for _, fe := range fieldErrs {
					if fe.Field == f {
						found = true
					}
				}
				assert.True(t, found, "expected an error on %s, got %+v", f, fieldErrs)
			}
		})
	}
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("cases:\n  - rule: verify_age\n    wnt: Eligible\n"), FormatYAML, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode yaml")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("cases.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("cases.yml"))
	assert.Equal(t, FormatYAML, FormatOf("cases"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "casebook: read")
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
		ok   bool
	}{
		{"float vs int", 30.0, 30, true},
		{"float within tolerance", 100.2, 100.20000000000001, true},
		{"float outside tolerance", 100.2, 100.3, false},
		{"float vs label", 212.0, "212", false},
		{"label", "Valid Email", "Valid Email", true},
		{"label mismatch", "Valid Email", "Invalid Email", false},
		{"label vs number", "Invalid Temperature", 0, false},
		{"bool", true, true, true},
		{"bool mismatch", false, true, false},
		{"bool vs string", true, "true", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, matches(tt.got, tt.want, DefaultTolerance))
		})
	}
}
