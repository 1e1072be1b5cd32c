package casebook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
	"github.com/dalemusser/rulebook/pantry/text"
	"github.com/dalemusser/rulebook/rules"
)

// Observer receives one call per evaluated case. metrics.Recorder
// satisfies it.
type Observer interface {
	Observe(rule, outcome string, d time.Duration)
}

// Runner evaluates decision tables. The zero value uses the default
// registry, DefaultTolerance and a no-op logger.
type Runner struct {
	Registry *rules.Registry
	// Tolerance is the absolute slack for numeric results. Zero selects
	// DefaultTolerance unless Exact is set.
	Tolerance float64
	// Exact compares numbers with no slack at all.
	Exact    bool
	FailFast bool
	Logger   *zap.Logger
	Observer Observer
}

// Run evaluates the cases of book in order. It stops early when ctx is
// cancelled, returning the partial report together with ctx.Err(), or
// after the first failing case when FailFast is set.
func (r *Runner) Run(ctx context.Context, book *Book) (*Report, error) {
	reg := r.Registry
	if reg == nil {
		reg = rules.Default()
	}
	tol := r.Tolerance
	switch {
	case r.Exact:
		tol = 0
	case tol <= 0:
		tol = DefaultTolerance
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{
		RunID:   uuid.New(),
		Book:    book.Name,
		Started: time.Now(),
	}
	logger = logger.With(zap.String("run_id", report.RunID.String()), zap.String("book", book.Name))
	logger.Info("casebook run started", zap.Int("cases", len(book.Cases)))

	for i, c := range book.Cases {
		if err := ctx.Err(); err != nil {
			report.finish()
			logger.Warn("casebook run cancelled", zap.Int("evaluated", len(report.Results)), zap.Error(err))
			return report, err
		}

		res, ruleName := r.evaluate(reg, tol, i, c)
		report.add(res)

		logger.Debug("case evaluated",
			zap.Int("index", res.Index),
			zap.String("case", res.Name),
			zap.String("rule", res.Rule),
			zap.Stringer("outcome", res.Outcome),
			zap.String("got", res.Got),
			zap.Duration("elapsed", res.Duration),
		)
		if r.Observer != nil {
			r.Observer.Observe(ruleName, res.Outcome.String(), res.Duration)
		}

		if r.FailFast && res.Outcome != OutcomePass {
			logger.Info("stopping after first failure", zap.String("case", res.Name))
			break
		}
	}

	report.finish()
	logger.Info("casebook run finished",
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed),
		zap.Int("errored", report.Errored),
		zap.Duration("elapsed", report.Duration),
	)
	return report, nil
}

// evaluate runs one case. It also returns the registry's name for the rule
// so differently spelled references share one metrics series.
func (r *Runner) evaluate(reg *rules.Registry, tol float64, index int, c Case) (Result, string) {
	res := Result{
		Index: index,
		Name:  c.Label(index),
		Rule:  c.Rule,
		Args:  renderArgs(c.Args),
		Want:  render(c.Want),
	}
	if c.WantError != "" {
		res.Want = "error: " + c.WantError
	}

	ruleName := text.Key(c.Rule)
	start := time.Now()
	rule, err := reg.Lookup(c.Rule)
	var got any
	if err == nil {
		ruleName = rule.Name
		got, err = rule.Eval(c.Args)
	}
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		code := apperr.CodeOf(err)
		res.Got = "error: " + code
		res.Detail = err.Error()
		if c.WantError == "" {
			res.Outcome = OutcomeError
		} else if code == c.WantError {
			res.Outcome = OutcomePass
		} else {
			res.Outcome = OutcomeFail
		}
	case c.WantError != "":
		res.Got = render(got)
		res.Outcome = OutcomeFail
		res.Detail = "expected an error"
	default:
		res.Got = render(got)
		if matches(got, c.Want, tol) {
			res.Outcome = OutcomePass
		} else {
			res.Outcome = OutcomeFail
		}
	}
	return res, ruleName
}

// renderArgs shows args as compact JSON with sorted keys.
func renderArgs(args rules.Args) string {
	if len(args) == 0 {
		return "{}"
	}
	b, err := json.Marshal(map[string]any(args))
	if err != nil {
		return "<unprintable>"
	}
	return string(b)
}
