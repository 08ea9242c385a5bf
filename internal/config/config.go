// Package config loads console settings from defaults, an optional YAML
// file, a .env file and PWEZA_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pweza/pweza-admin/internal/idle"
	"github.com/pweza/pweza-admin/pkg/client"
)

// EnvPrefix prefixes every environment override, e.g. PWEZA_API_BASE_URL.
const EnvPrefix = "PWEZA"

// Config is the effective console configuration.
type Config struct {
	API   APIConfig
	Idle  IdleConfig
	Store StoreConfig
	Log   LogConfig

	// File is the config file that was read, or "" if none was.
	File string
}

// APIConfig addresses the backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit float64
	Burst     int
}

// IdleConfig mirrors idle.Config.
type IdleConfig struct {
	InactivityTimeout time.Duration
	WarningPeriod     time.Duration
	TickInterval      time.Duration
	Debounce          time.Duration
}

// Guard converts to the guard's own config type.
func (c IdleConfig) Guard() idle.Config {
	return idle.Config{
		InactivityTimeout: c.InactivityTimeout,
		WarningPeriod:     c.WarningPeriod,
		TickInterval:      c.TickInterval,
		Debounce:          c.Debounce,
	}
}

// StoreConfig selects the credential store.
type StoreConfig struct {
	Backend string
	Path    string
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Dir returns ~/.pweza, the root of everything the console writes.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".pweza"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	g := idle.DefaultConfig()

	v.SetDefault("api.base_url", client.DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.rate_limit", 10.0)
	v.SetDefault("api.burst", 20)

	v.SetDefault("idle.inactivity_timeout", g.InactivityTimeout)
	v.SetDefault("idle.warning_period", g.WarningPeriod)
	v.SetDefault("idle.tick_interval", g.TickInterval)
	v.SetDefault("idle.debounce", g.Debounce)

	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "logs", "pweza.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
}

// LoadDotenv loads each existing file into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration. configFile may be empty, in which case
// ~/.pweza/config.yaml is used if it exists. overrides, keyed like
// "api.base_url", win over every other source.
func Load(configFile string, overrides map[string]any) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{File: v.ConfigFileUsed()}
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}

	cfg.API.BaseURL = strings.TrimRight(v.GetString("api.base_url"), "/")
	cfg.API.Timeout = v.GetDuration("api.timeout")
	cfg.API.RateLimit = v.GetFloat64("api.rate_limit")
	cfg.API.Burst = v.GetInt("api.burst")

	cfg.Idle.InactivityTimeout = v.GetDuration("idle.inactivity_timeout")
	cfg.Idle.WarningPeriod = v.GetDuration("idle.warning_period")
	cfg.Idle.TickInterval = v.GetDuration("idle.tick_interval")
	cfg.Idle.Debounce = v.GetDuration("idle.debounce")

	cfg.Store.Backend = strings.ToLower(v.GetString("store.backend"))
	cfg.Store.Path = v.GetString("store.path")
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath(dir, cfg.Store.Backend)
	}

	cfg.Log.Level = strings.ToLower(v.GetString("log.level"))
	cfg.Log.File = v.GetString("log.file")
	cfg.Log.MaxSizeMB = v.GetInt("log.max_size_mb")
	cfg.Log.MaxBackups = v.GetInt("log.max_backups")
	cfg.Log.MaxAgeDays = v.GetInt("log.max_age_days")
	cfg.Log.Compress = v.GetBool("log.compress")

	return cfg, nil
}

func defaultStorePath(dir, backend string) string {
	if backend == "sqlite" {
		return filepath.Join(dir, "pweza.db")
	}
	return filepath.Join(dir, "credentials")
}

// YAML renders the effective configuration in config file form.
func (c *Config) YAML() ([]byte, error) {
	doc := map[string]any{
		"api": map[string]any{
			"base_url":   c.API.BaseURL,
			"timeout":    c.API.Timeout.String(),
			"rate_limit": c.API.RateLimit,
			"burst":      c.API.Burst,
		},
		"idle": map[string]any{
			"inactivity_timeout": c.Idle.InactivityTimeout.String(),
			"warning_period":     c.Idle.WarningPeriod.String(),
			"tick_interval":      c.Idle.TickInterval.String(),
			"debounce":           c.Idle.Debounce.String(),
		},
		"store": map[string]any{
			"backend": c.Store.Backend,
			"path":    c.Store.Path,
		},
		"log": map[string]any{
			"level":        c.Log.Level,
			"file":         c.Log.File,
			"max_size_mb":  c.Log.MaxSizeMB,
			"max_backups":  c.Log.MaxBackups,
			"max_age_days": c.Log.MaxAgeDays,
			"compress":     c.Log.Compress,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config.YAML: %w", err)
	}
	return out, nil
}
