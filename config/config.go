// config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dalemusser/rulebook/logging"
)

// EnvPrefix prefixes every environment variable, e.g. RULEBOOK_CASES.
const EnvPrefix = "RULEBOOK"

// Config holds the settings of a casebook run.
type Config struct {
	// runtime
	Env      string `mapstructure:"env" json:"env"`             // "dev" | "prod"
	LogLevel string `mapstructure:"log_level" json:"log_level"` // debug, info, warn, error …

	// input
	Cases string `mapstructure:"cases" json:"cases"`

	// outputs (empty = skip)
	ReportCSV       string `mapstructure:"report_csv" json:"report_csv"`
	ReportXLSX      string `mapstructure:"report_xlsx" json:"report_xlsx"`
	MetricsTextfile string `mapstructure:"metrics_textfile" json:"metrics_textfile"`

	// evaluation
	Tolerance float64       `mapstructure:"tolerance" json:"tolerance"`
	FailFast  bool          `mapstructure:"fail_fast" json:"fail_fast"`
	Timeout   time.Duration `mapstructure:"-" json:"timeout"` // 0 = no limit
}

// Dump returns the config as pretty JSON for debug logging.
func (c Config) Dump() string {
	b, _ := json.MarshalIndent(c, "", "  ")
	return string(b)
}

// setting is one configuration key with its default and help text.
type setting struct {
	name  string
	def   any
	usage string
}

var settings = []setting{
	{"env", "dev", `Runtime environment "dev"|"prod"`},
	{"log_level", "info", "Log level"},
	{"cases", "", "Case table to run (.yaml, .yml or .json)"},
	{"report_csv", "", "Write the run report as CSV to this file"},
	{"report_xlsx", "", "Write the run report as an Excel workbook to this file"},
	{"metrics_textfile", "", "Write evaluation metrics in Prometheus text format to this file"},
	{"tolerance", 1e-9, "Absolute tolerance for numeric expectations (0 = exact match)"},
	{"fail_fast", false, "Stop at the first case that does not pass"},
	{"timeout", "0s", `Abort the run after this long (e.g. "30s", "2m"; 0 = no limit)`},
}

// NewFlagSet defines every configuration key as a flag, plus --config for
// an explicit config file. Only flags the user actually sets override the
// other sources.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	for _, s := range settings {
		switch d := s.def.(type) {
		case string:
			fs.String(s.name, d, s.usage)
		case float64:
			fs.Float64(s.name, d, s.usage)
		case bool:
			fs.Bool(s.name, d, s.usage)
		}
	}
	fs.String("config", "", "Config file to merge (yaml|yml|json|toml); config.* in the working directory is merged by default")
	return fs
}

// Load merges defaults → config.* file(s) → env vars → explicit flags into
// one Config. fs must already be parsed; it may be nil when there are no
// flags. Final precedence (highest wins): flags(explicit) > env > config > defaults.
func Load(logger *zap.Logger, fs *pflag.FlagSet) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fs == nil {
		fs = pflag.NewFlagSet("none", pflag.ContinueOnError)
	}

	// 1) Optionally load .env (real env still wins over .env)
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded .env file")
	}

	// 2) Viper + env
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, s := range settings {
		_ = v.BindEnv(s.name)
	}

	// 3) Config files: config.* in the working directory, then --config.
	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "config." + ext
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := mergeFile(v, file); err != nil {
			logger.Warn("skipping config file", zap.String("file", file), zap.Error(err))
			continue
		}
		logger.Info("loaded config file", zap.String("file", file))
	}
	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		file := f.Value.String()
		if err := mergeFile(v, file); err != nil {
			return nil, err
		}
		logger.Info("loaded config file", zap.String("file", file))
	}

	// 4) Defaults (lowest precedence)
	for _, s := range settings {
		v.SetDefault(s.name, s.def)
	}

	// 5) Explicit flags (highest precedence)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed && isSetting(f.Name) {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	// 6) Build struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))

	timeout, err := parseDurationFlexible(v.Get("timeout"), 0)
	if err != nil {
		return nil, fmt.Errorf("config key \"timeout\": %w", err)
	}
	cfg.Timeout = timeout

	// 7) Validate
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isSetting(name string) bool {
	for _, s := range settings {
		if s.name == name {
			return true
		}
	}
	return false
}

// mergeFile merges one config file, choosing the decoder by extension.
func mergeFile(v *viper.Viper, file string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	switch ext {
	case "yaml", "yml", "json", "toml":
	default:
		return fmt.Errorf("config file %s: unsupported extension %q", file, ext)
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	v.SetConfigType(ext)
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return fmt.Errorf("decode config file %s: %w", file, err)
	}
	return nil
}

func validateConfig(cfg Config) error {
	var missing []string
	var invalid []string

	if cfg.Env != logging.EnvDev && cfg.Env != logging.EnvProd {
		invalid = append(invalid, `env must be "dev" or "prod"`)
	}
	if !logging.IsValidLogLevel(cfg.LogLevel) {
		invalid = append(invalid, "log_level must be one of "+strings.Join(logging.ValidLogLevels, ", "))
	}

	if strings.TrimSpace(cfg.Cases) == "" {
		missing = append(missing, EnvPrefix+"_CASES (or --cases)")
	}

	if cfg.ReportXLSX != "" && !strings.EqualFold(filepath.Ext(cfg.ReportXLSX), ".xlsx") {
		invalid = append(invalid, "report_xlsx must end in .xlsx")
	}

	if math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) || cfg.Tolerance < 0 {
		invalid = append(invalid, "tolerance must be a finite number >= 0")
	}

	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("configuration errors: %s", strings.Join(parts, " | "))
}
