package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so stray config.* or .env
// files cannot leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := NewFlagSet("test")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return Load(nil, fs)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := load(t, "--cases", "cases.yaml")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "cases.yaml", cfg.Cases)
	assert.Equal(t, 1e-9, cfg.Tolerance)
	assert.False(t, cfg.FailFast)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.ReportCSV)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"cases: from-file.yaml\nlog_level: warn\ntolerance: 0.5\nreport_csv: file.csv\n"), 0o644))
	t.Setenv("RULEBOOK_LOG_LEVEL", "error")
	t.Setenv("RULEBOOK_TOLERANCE", "0.25")

	cfg, err := load(t, "--tolerance", "0.125", "--fail_fast")
	require.NoError(t, err)

	assert.Equal(t, "from-file.yaml", cfg.Cases, "file beats default")
	assert.Equal(t, "file.csv", cfg.ReportCSV)
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, 0.125, cfg.Tolerance, "flag beats env")
	assert.True(t, cfg.FailFast)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RULEBOOK_CASES=dotenv.yaml\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RULEBOOK_CASES") })

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "dotenv.yaml", cfg.Cases)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cases": "j.yaml", "timeout": "90s", "env": "PROD"}`), 0o644))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "j.yaml", cfg.Cases)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "prod", cfg.Env)

	_, err = load(t, "--config", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = load(t, "--config", filepath.Join(dir, "run.ini"))
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestLoadValidation(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"missing cases", nil, []string{"missing: RULEBOOK_CASES"}},
		{"bad env", []string{"--cases", "c.yaml", "--env", "staging"}, []string{`env must be "dev" or "prod"`}},
		{"bad level", []string{"--cases", "c.yaml", "--log_level", "loud"}, []string{"log_level must be one of"}},
		{"negative tolerance", []string{"--cases", "c.yaml", "--tolerance", "-1"}, []string{"tolerance must be"}},
		{"xlsx extension", []string{"--cases", "c.yaml", "--report_xlsx", "out.csv"}, []string{"report_xlsx must end in .xlsx"}},
		{"both lists", []string{"--env", "qa"}, []string{"missing:", "invalid:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.args...)
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoadWithoutFlags(t *testing.T) {
	isolate(t)
	t.Setenv("RULEBOOK_CASES", "env.yaml")
	t.Setenv("RULEBOOK_FAIL_FAST", "true")
	t.Setenv("RULEBOOK_TIMEOUT", "45")

	cfg, err := Load(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.Cases)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadForeignFlagsIgnored(t *testing.T) {
	isolate(t)

	fs := NewFlagSet("test")
	fs.Bool("verbose", false, "not a config key")
	require.NoError(t, fs.Parse([]string{"--verbose", "--cases", "c.yaml"}))

	cfg, err := Load(nil, fs)
	require.NoError(t, err)
	assert.Equal(t, "c.yaml", cfg.Cases)
}

func TestLoadNegativeTimeout(t *testing.T) {
	isolate(t)

	_, err := load(t, "--cases", "c.yaml", "--timeout", "-5s")
	assert.ErrorContains(t, err, "timeout")
}

func TestParseDurationFlexible(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    time.Duration
		wantErr bool
	}{
		{"duration string", "2m", 2 * time.Minute, false},
		{"seconds string", "90", 90 * time.Second, false},
		{"fractional seconds", "1.5", 1500 * time.Millisecond, false},
		{"int", 3, 3 * time.Second, false},
		{"float", 0.5, 500 * time.Millisecond, false},
		{"zero", "0s", 0, false},
		{"empty uses default", "", 7 * time.Second, false},
		{"unknown type uses default", true, 7 * time.Second, false},
		{"negative", "-1s", 0, true},
		{"garbage", "soon", 7 * time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDurationFlexible(tt.raw, 7*time.Second)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDump(t *testing.T) {
	cfg := Config{Env: "dev", Cases: "c.yaml"}
	assert.Contains(t, cfg.Dump(), `"cases": "c.yaml"`)
}
