package rulebookcli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/rulebook/rules"
)

func newCLI() (*cli, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &cli{bin: "rulebook", stdout: &stdout, stderr: &stderr, reg: rules.Default()}, &stdout, &stderr
}

func TestUsage(t *testing.T) {
	c, stdout, _ := newCLI()
	assert.Equal(t, 0, c.run(context.Background(), nil))
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "Available Commands:")

	stdout.Reset()
	assert.Equal(t, 0, c.run(context.Background(), []string{"help", "eval"}))
	assert.Contains(t, stdout.String(), "rulebook eval <rule>")

	c, _, stderr := newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"frobnicate"}))
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}

func TestVersion(t *testing.T) {
	c, stdout, _ := newCLI()
	assert.Equal(t, 0, c.run(context.Background(), []string{"version"}))
	assert.True(t, strings.HasPrefix(stdout.String(), "rulebook "))
	assert.Contains(t, stdout.String(), "commit")
}

func TestList(t *testing.T) {
	c, stdout, _ := newCLI()
	require.Equal(t, 0, c.run(context.Background(), []string{"list"}))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 21)

	stdout.Reset()
	require.Equal(t, 0, c.run(context.Background(), []string{"list", "Validate-"}))
	out := stdout.String()
	assert.Contains(t, out, "validate_email(email:string)")
	assert.NotContains(t, out, "verify_age")

	c, _, stderr := newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"list", "zzz"}))
	assert.Contains(t, stderr.String(), "no rules match")
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
		err  string
	}{
		{"label", []string{"validate_email", "email=a@b.c"}, 0, "Valid Email\n", ""},
		{"number", []string{"calculate_total_discount", "amount=501"}, 0, "100.2\n", ""},
		{"bool", []string{"validate_password", "password=holA1!asd"}, 0, "true\n", ""},
		{"list arg", []string{"calculate_items_shipping_cost", "items=[{weight: 3}, {weight: 12}]", "method=express"}, 0, "60\n", ""},
		{"digits stay strings", []string{"validate_credit_card", "card_number=0123456789012"}, 0, "Valid Card\n", ""},
		{"negative number", []string{"celsius_to_fahrenheit", "celsius=-40"}, 0, "-40\n", ""},
		{"sentinel label", []string{"celsius_to_fahrenheit", "celsius=101"}, 0, "Invalid Temperature\n", ""},
		{"flag", []string{"check_flight_eligibility", "age=10", "frequent_flyer=true"}, 0, "Eligible to Book\n", ""},
		{"domain error", []string{"calculate_items_shipping_cost", "items=[{weight: 5}]", "method=invalid"}, 1, "", "error: unknown_shipping_method"},
		{"unknown rule", []string{"nope"}, 1, "", "error: unknown_rule"},
		{"missing arg", []string{"verify_age"}, 1, "", "error: invalid_argument"},
		{"bad pair", []string{"verify_age", "18"}, 1, "", "expected key=value"},
		{"duplicate", []string{"verify_age", "age=1", "age=2"}, 1, "", "given twice"},
		{"no rule", nil, 1, "", "requires at least 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, stdout, stderr := newCLI()
			code := c.run(context.Background(), append([]string{"eval"}, tt.args...))
			assert.Equal(t, tt.code, code, "stderr: %s", stderr.String())
			assert.Equal(t, tt.out, stdout.String())
			if tt.err != "" {
				assert.Contains(t, stderr.String(), tt.err)
			}
		})
	}
}

func TestRunClassExercises(t *testing.T) {
	cases, err := filepath.Abs(filepath.Join("..", "..", "casebook", "testdata", "class_exercises.yaml"))
	require.NoError(t, err)
	dir := t.TempDir()
	chdir(t, dir)

	csvPath := filepath.Join(dir, "report.csv")
	xlsxPath := filepath.Join(dir, "report.xlsx")
	promPath := filepath.Join(dir, "rulebook.prom")

	c, stdout, stderr := newCLI()
	code := c.run(context.Background(), []string{"run",
		"--cases", cases,
		"--report_csv", csvPath,
		"--report_xlsx", xlsxPath,
		"--metrics_textfile", promPath,
		"--log_level", "warn",
	})
	require.Equal(t, 0, code, "stdout: %s\nstderr: %s", stdout.String(), stderr.String())
	assert.Equal(t, "class_exercises: 130 passed, 0 failed, 0 errors\n", stdout.String())

	assert.FileExists(t, csvPath)
	assert.FileExists(t, xlsxPath)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `rulebook_evaluations_total{outcome="pass",rule="validate_email"} 7`)
}

func TestRunFailingCases(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("cases.yaml", []byte(`
cases:
  - name: wrong on purpose
    rule: grade_quiz
    args: {correct: 4, incorrect: 4}
    want: Pass
  - rule: verify_age
    args: {age: 30}
    want: Eligible
`), 0o644))

	c, stdout, _ := newCLI()
	code := c.run(context.Background(), []string{"run", "--cases", "cases.yaml", "--log_level", "error"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "FAIL  grade_quiz")
	assert.Contains(t, stdout.String(), "[wrong on purpose]")
	assert.Contains(t, stdout.String(), "cases: 1 passed, 1 failed, 0 errors")
}

func TestRunExactTolerance(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("cases.yaml", []byte(`
cases:
  - rule: calculate_total_discount
    args: {amount: 501}
    want: 100.20000000001
`), 0o644))

	c, stdout, _ := newCLI()
	assert.Equal(t, 0, c.run(context.Background(), []string{"run", "--cases", "cases.yaml", "--log_level", "error"}))
	assert.Contains(t, stdout.String(), "1 passed, 0 failed")

	c, stdout, _ = newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"run", "--cases", "cases.yaml", "--tolerance", "0", "--log_level", "error"}))
	assert.Contains(t, stdout.String(), "0 passed, 1 failed")
}

func TestRunConfigErrors(t *testing.T) {
	chdir(t, t.TempDir())

	c, _, stderr := newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"run"}))
	assert.Contains(t, stderr.String(), "missing: RULEBOOK_CASES")

	c, _, stderr = newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"run", "--cases", "absent.yaml", "--log_level", "error"}))
	assert.Contains(t, stderr.String(), "casebook: read absent.yaml")

	c, stdout, _ := newCLI()
	assert.Equal(t, 0, c.run(context.Background(), []string{"run", "--help"}))
	assert.Contains(t, stdout.String(), "--fail_fast")
	assert.Contains(t, stdout.String(), "RULEBOOK_<FLAG>")

	c, _, stderr = newCLI()
	assert.Equal(t, 1, c.run(context.Background(), []string{"run", "--bogus"}))
	assert.Contains(t, stderr.String(), "unknown flag: --bogus")
}
