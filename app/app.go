// app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dalemusser/rulebook/config"
	"github.com/dalemusser/rulebook/logging"
	"github.com/dalemusser/rulebook/metrics"
)

// Deps are the shared services handed to a job.
type Deps struct {
	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// Hooks defines the integration points a command provides to Run.
type Hooks struct {
	// Name is used only for logging/diagnostics.
	Name string

	// LoadConfig returns the run configuration. It typically wraps
	// config.Load with the command's flag set and arguments.
	LoadConfig func(logger *zap.Logger) (*config.Config, error)

	// Job does the work once logging and metrics are ready. ctx is
	// cancelled on SIGINT/SIGTERM and when cfg.Timeout elapses.
	Job func(ctx context.Context, cfg *config.Config, deps Deps) error

	// LogOutput receives all log entries. Nil means stderr.
	LogOutput zapcore.WriteSyncer
}

// Run executes the standard startup sequence:
//
//  1. Bootstrap logger
//  2. Load config (Hooks.LoadConfig)
//  3. Build final logger based on config
//  4. Create the metrics recorder
//  5. Wire shutdown signals and the run timeout to a context
//  6. Run the job (Hooks.Job)
//  7. Write the metrics textfile, if configured
//
// Errors are returned, not fatal; the caller picks the exit code.
func Run(ctx context.Context, hooks Hooks) error {
	// 1) Bootstrap logger for early startup
	bootstrap := logging.New(logging.Options{Level: "info", Env: logging.EnvDev, Output: hooks.LogOutput})
	defer bootstrap.Sync()

	// 2) Load config
	cfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 3) Build final logger
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Env: cfg.Env, Output: hooks.LogOutput})
	defer logger.Sync()
	logger = logger.With(zap.String("app", hooks.Name))
	logger.Debug("config loaded", zap.String("config", cfg.Dump()))

	// 4) Metrics
	rec := metrics.NewRecorder(logger)

	// 5) Shutdown signals and timeout → context
	ctx, cancel := WithShutdownSignals(ctx, logger)
	defer cancel()
	if cfg.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, cfg.Timeout)
		defer cancelTimeout()
	}

	// 6) Job
	jobErr := hooks.Job(ctx, cfg, Deps{Logger: logger, Metrics: rec})
	if jobErr != nil && !errors.Is(jobErr, ErrUnsuccessful) {
		logger.Error("job failed", zap.Error(jobErr))
	}

	// 7) Metrics textfile, written even when the job failed so partial
	// runs are still visible.
	if cfg.MetricsTextfile != "" {
		if err := rec.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile failed", zap.String("file", cfg.MetricsTextfile), zap.Error(err))
			return errors.Join(jobErr, fmt.Errorf("write metrics textfile: %w", err))
		}
		logger.Info("metrics written", zap.String("file", cfg.MetricsTextfile))
	}

	return jobErr
}

// ErrUnsuccessful is returned by jobs that ran to completion but whose
// outcome was negative, e.g. failing cases. Run does not log it as an error.
var ErrUnsuccessful = errors.New("unsuccessful")
