package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points HOME at a temp dir so no real config file is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Idle.InactivityTimeout)
	assert.Equal(t, 30*time.Second, cfg.Idle.WarningPeriod)
	assert.Equal(t, time.Second, cfg.Idle.TickInterval)
	assert.Equal(t, time.Second, cfg.Idle.Debounce)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, filepath.Join(home, ".pweza", "credentials"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(home, ".pweza", "logs", "pweza.log"), cfg.Log.File)
	assert.Empty(t, cfg.File)
	assert.Empty(t, cfg.Validate())
}

func TestLoad_FileThenEnvThenOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: "https://api.example.com/api/"
  timeout: 10s
idle:
  inactivity_timeout: 10m
  warning_period: 1m
store:
  backend: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PWEZA_IDLE_WARNING_PERIOD", "45s")
	t.Setenv("PWEZA_LOG_LEVEL", "warn")

	cfg, err := Load(path, map[string]any{"log.level": "error"})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Idle.InactivityTimeout)
	assert.Equal(t, 45*time.Second, cfg.Idle.WarningPeriod, "env beats file")
	assert.Equal(t, "error", cfg.Log.Level, "override beats env")
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "pweza.db", filepath.Base(cfg.Store.Path))
}

func TestLoad_HomeConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".pweza")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api:\n  burst: 5\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.API.Burst)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o644))

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PWEZA_API_BASE_URL=https://staging.example.com/api\n"), 0o600))
	t.Setenv("PWEZA_API_BASE_URL", "")
	os.Unsetenv("PWEZA_API_BASE_URL")

	require.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "missing.env"), envFile))
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api", cfg.API.BaseURL)
}

func TestLoadDotenv_DoesNotOverrideEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PWEZA_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PWEZA_LOG_LEVEL", "warn")

	require.NoError(t, LoadDotenv(envFile))
	assert.Equal(t, "warn", os.Getenv("PWEZA_LOG_LEVEL"))
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url"},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "api.base_url"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"burst without room", func(c *Config) { c.API.Burst = 0 }, "api.burst"},
		{"zero inactivity", func(c *Config) { c.Idle.InactivityTimeout = 0 }, "idle.inactivity_timeout"},
		{"uneven warning", func(c *Config) { c.Idle.WarningPeriod = 2500 * time.Millisecond }, "idle.warning_period"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "keychain" }, "store.backend"},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			errs := cfg.Validate()
			require.Len(t, errs, 1)
			var verr *ValidationError
			require.ErrorAs(t, errs[0], &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestIdleGuardConfig(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	g := cfg.Idle.Guard()
	assert.NoError(t, g.Validate())
	assert.Equal(t, 30, g.Countdown())
}

func TestYAML(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "5m0s", doc["idle"]["inactivity_timeout"])
	assert.Equal(t, "file", doc["store"]["backend"])
}
