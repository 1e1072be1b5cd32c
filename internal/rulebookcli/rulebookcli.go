// internal/rulebookcli/rulebookcli.go
package rulebookcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dalemusser/rulebook/app"
	"github.com/dalemusser/rulebook/casebook"
	"github.com/dalemusser/rulebook/config"
	apperr "github.com/dalemusser/rulebook/pantry/errors"
	"github.com/dalemusser/rulebook/pantry/version"
	"github.com/dalemusser/rulebook/rules"
)

// Run is the entrypoint used by cmd/rulebook.
//
// binName is the CLI name to show in help/usage text.
// args are the command-line arguments excluding the binary name (i.e. os.Args[1:]).
//
// It returns a process exit code; callers should os.Exit(Run(...)).
func Run(binName string, args []string) int {
	return (&cli{
		bin:    binName,
		stdout: os.Stdout,
		stderr: os.Stderr,
		reg:    rules.Default(),
	}).run(context.Background(), args)
}

type cli struct {
	bin    string
	stdout io.Writer
	stderr io.Writer
	reg    *rules.Registry
}

func (c *cli) run(ctx context.Context, args []string) int {
	root := c.newRootCommand()
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrUnsuccessful):
		return 1
	default:
		fmt.Fprintln(c.stderr, "error:", err)
		return 1
	}
}

// newRootCommand creates the root command; without a subcommand it shows help.
func (c *cli) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           c.bin,
		Short:         "Validation and business-rule library with a decision-table runner",
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(
		c.newListCommand(),
		c.newEvalCommand(),
		c.newRunCommand(),
		c.newVersionCommand(),
	)
	return root
}

func (c *cli) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List rules, optionally those whose name starts with prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			names := c.reg.Match(prefix)
			if len(names) == 0 {
				return fmt.Errorf("no rules match %q", prefix)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range names {
				r, err := c.reg.Lookup(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\n", r.Signature(), r.Doc)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <rule> key=value [key=value...]",
		Short: "Evaluate one rule",
		Example: fmt.Sprintf("  %[1]s eval validate_email email=a@b.c\n"+
			"  %[1]s eval calculate_items_shipping_cost 'items=[{weight: 3}]' method=express", c.bin),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := c.reg.Lookup(args[0])
			if err != nil {
				return describe(err)
			}

			ruleArgs, err := parseAssignments(rule, args[1:])
			if err != nil {
				return err
			}

			got, err := rule.Eval(ruleArgs)
			if err != nil {
				return describe(err)
			}

			if f, ok := got.(float64); ok {
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(f, 'g', -1, 64))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), got)
			}
			return nil
		},
	}
}

// describe prefixes an error with its code, e.g. "unknown_rule: unknown rule "x"".
func describe(err error) error {
	e := apperr.From(err)
	return fmt.Errorf("%s: %s", e.Code, e.Message)
}

// parseAssignments turns key=value pairs into arguments for rule. String
// parameters take the value verbatim; everything else is decoded as YAML,
// so 5 is a number, true is a bool and [{weight: 3}] is a list. Values that
// do not decode, or are empty, stay strings.
func parseAssignments(rule *rules.Rule, pairs []string) (rules.Args, error) {
	kinds := make(map[string]rules.Kind, len(rule.Params))
	for _, p := range rule.Params {
		kinds[p.Name] = p.Kind
	}

	out := make(rules.Args, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("argument %q given twice", key)
		}

		if kinds[key] == rules.KindString {
			out[key] = raw
			continue
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
			v = raw
		}
		out[key] = v
	}
	return out, nil
}

func (c *cli) newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a case table and write reports",
		Long: "Evaluate every case of a YAML or JSON case table and report the ones that do not pass.\n\n" +
			"Every flag can also be set as " + config.EnvPrefix + "_<FLAG>, in .env, or in config.yaml.\n" +
			"Exits 1 when any case fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Hooks{
				Name: c.bin,
				LoadConfig: func(logger *zap.Logger) (*config.Config, error) {
					return config.Load(logger, cmd.Flags())
				},
				Job: func(ctx context.Context, cfg *config.Config, deps app.Deps) error {
					return c.runJob(ctx, cmd.OutOrStdout(), cfg, deps)
				},
				LogOutput: zapcore.AddSync(cmd.ErrOrStderr()),
			})
		},
	}
	cmd.Flags().AddFlagSet(config.NewFlagSet("run"))
	return cmd
}

// runJob evaluates the configured case table and writes the reports.
func (c *cli) runJob(ctx context.Context, out io.Writer, cfg *config.Config, deps app.Deps) error {
	book, err := casebook.Load(cfg.Cases, c.reg)
	if err != nil {
		return err
	}

	runner := &casebook.Runner{
		Registry:  c.reg,
		Tolerance: cfg.Tolerance,
		Exact:     cfg.Tolerance == 0,
		FailFast:  cfg.FailFast,
		Logger:    deps.Logger,
		Observer:  deps.Metrics,
	}
	report, runErr := runner.Run(ctx, book)

	for _, p := range report.Problems() {
		fmt.Fprintf(out, "%s  %s %s: want %s, got %s", strings.ToUpper(p.Outcome.String()), p.Rule, p.Args, p.Want, p.Got)
		if p.Detail != "" && p.Outcome == casebook.OutcomeError {
			fmt.Fprintf(out, " (%s)", p.Detail)
		}
		fmt.Fprintf(out, "  [%s]\n", p.Name)
	}
	fmt.Fprintln(out, report.Summary())

	var errs []error
	if runErr != nil {
		errs = append(errs, fmt.Errorf("run %s: %w", book.Name, runErr))
	}
	if cfg.ReportCSV != "" {
		if err := report.SaveCSV(cfg.ReportCSV); err != nil {
			errs = append(errs, err)
		} else {
			deps.Logger.Info("csv report written", zap.String("file", cfg.ReportCSV))
		}
	}
	if cfg.ReportXLSX != "" {
		if err := report.SaveXLSX(cfg.ReportXLSX); err != nil {
			errs = append(errs, err)
		} else {
			deps.Logger.Info("xlsx report written", zap.String("file", cfg.ReportXLSX))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if !report.OK() {
		return app.ErrUnsuccessful
	}
	return nil
}

func (c *cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.bin, version.Get())
		},
	}
}
