package casebook

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dalemusser/rulebook/pantry/export"
)

// Outcome classifies a case result.
type Outcome string

const (
	// OutcomePass means the rule produced the expected value or error code.
	OutcomePass Outcome = "pass"
	// OutcomeFail means the rule produced something else.
	OutcomeFail Outcome = "fail"
	// OutcomeError means the rule returned an error nobody asked for.
	OutcomeError Outcome = "error"
)

func (o Outcome) String() string { return string(o) }

// Result is the evaluation of one case.
type Result struct {
	Index    int           `csv:"index" excel:"#"`
	Name     string        `csv:"case" excel:"Case"`
	Rule     string        `csv:"rule" excel:"Rule"`
	Args     string        `csv:"args" excel:"Args"`
	Want     string        `csv:"want" excel:"Want"`
	Got      string        `csv:"got" excel:"Got"`
	Outcome  Outcome       `csv:"outcome" excel:"Outcome"`
	Detail   string        `csv:"detail" excel:"Detail"`
	Duration time.Duration `csv:"duration" excel:"-"`
}

// Report collects the results of one run.
type Report struct {
	RunID    uuid.UUID
	Book     string
	Started  time.Time
	Duration time.Duration
	Results  []Result
	Passed   int
	Failed   int
	Errored  int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomePass:
		r.Passed++
	case OutcomeFail:
		r.Failed++
	case OutcomeError:
		r.Errored++
	}
}

func (r *Report) finish() {
	r.Duration = time.Since(r.Started)
}

// OK reports whether every evaluated case passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Problems returns the results that did not pass.
func (r *Report) Problems() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome != OutcomePass {
			out = append(out, res)
		}
	}
	return out
}

// Summary is a one-line tally, e.g. "class_exercises: 118 passed, 0 failed, 0 errors".
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d passed, %d failed, %d errors", r.Book, r.Passed, r.Failed, r.Errored)
}

func (r *Report) csv() *export.CSV {
	c := export.NewCSV()
	if len(r.Results) == 0 {
		return c.Headers("index", "case", "rule", "args", "want", "got", "outcome", "detail", "duration")
	}
	return c.From(r.Results)
}

// WriteCSV writes one row per result to w.
func (r *Report) WriteCSV(w io.Writer) error {
	return r.csv().Write(w)
}

// SaveCSV writes the results to a CSV file at path.
func (r *Report) SaveCSV(path string) error {
	if err := r.csv().Save(path); err != nil {
		return fmt.Errorf("casebook: save csv %s: %w", path, err)
	}
	return nil
}

// SaveXLSX writes a workbook with a Results sheet and a Summary sheet.
func (r *Report) SaveXLSX(path string) error {
	x := export.NewExcel()
	defer x.Close()

	results := x.Sheet("Results")
	if len(r.Results) == 0 {
		results.Headers("#", "Case", "Rule", "Args", "Want", "Got", "Outcome", "Detail")
	} else {
		results.From(r.Results)
	}
	results.AutoWidth().FreezeHeader()

	x.Sheet("Summary").
		Headers("Field", "Value").
		Row("Run ID", r.RunID.String()).
		Row("Book", r.Book).
		Row("Started", r.Started.UTC().Format(time.RFC3339)).
		Row("Duration", r.Duration.String()).
		Row("Cases", len(r.Results)).
		Row("Passed", r.Passed).
		Row("Failed", r.Failed).
		Row("Errored", r.Errored).
		AutoWidth()

	if err := x.Save(path); err != nil {
		return fmt.Errorf("casebook: save xlsx %s: %w", path, err)
	}
	return nil
}
