// logging/logging.go
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments understood by New. Anything other than EnvProd gets the
// development encoder.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// ValidLogLevels lists all valid zap log levels for validation.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLogLevel checks if the given level string is a valid zap log level.
// Comparison is case-insensitive.
func IsValidLogLevel(level string) bool {
	level = strings.ToLower(level)
	for _, valid := range ValidLogLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// Options controls logger construction.
type Options struct {
	Level string
	Env   string
	// Output defaults to stderr. Stdout is left to command output.
	Output zapcore.WriteSyncer
}

// New builds a logger from opts. prod gets JSON with the production
// encoder; everything else gets the plain console encoder. An
// invalid level falls back to info and the logger's first entry says so.
func New(opts Options) *zap.Logger {
	var (
		encCfg   zapcore.EncoderConfig
		encoder  zapcore.Encoder
		zapOpts  []zap.Option
		badLevel bool
	)

	if opts.Env == EnvProd {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
		zapOpts = []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
		zapOpts = []zap.Option{zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel)}
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if !IsValidLogLevel(opts.Level) {
			badLevel = true
		} else if err := level.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			badLevel = true
		}
	}

	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}

	logger := zap.New(zapcore.NewCore(encoder, out, zap.NewAtomicLevelAt(level)), zapOpts...)
	if badLevel {
		logger.Warn("invalid log level; defaulting to info",
			zap.String("requested", opts.Level),
			zap.Strings("valid", ValidLogLevels))
	}
	return logger
}

// BootstrapLogger returns a development logger at info level for use
// before configuration is loaded.
func BootstrapLogger() *zap.Logger {
	return New(Options{Level: "info", Env: EnvDev})
}

// BuildLogger constructs the final logger on stderr for level and env.
func BuildLogger(level, env string) *zap.Logger {
	return New(Options{Level: level, Env: env})
}
