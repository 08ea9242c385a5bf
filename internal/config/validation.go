package config

import (
	"fmt"
	"net/url"
)

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate returns every invalid setting.
func (c *Config) Validate() []error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("api.base_url", "must be an absolute URL, got %q", c.API.BaseURL)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		add("api.base_url", "scheme must be http or https, got %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		add("api.timeout", "must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		add("api.rate_limit", "must not be negative, got %g", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		add("api.burst", "must be at least 1 when rate limiting, got %d", c.API.Burst)
	}

	if c.Idle.InactivityTimeout <= 0 {
		add("idle.inactivity_timeout", "must be positive, got %s", c.Idle.InactivityTimeout)
	}
	if c.Idle.WarningPeriod <= 0 {
		add("idle.warning_period", "must be positive, got %s", c.Idle.WarningPeriod)
	}
	if c.Idle.TickInterval <= 0 {
		add("idle.tick_interval", "must be positive, got %s", c.Idle.TickInterval)
	} else if c.Idle.WarningPeriod%c.Idle.TickInterval != 0 {
		add("idle.warning_period", "must be a whole number of ticks (%s)", c.Idle.TickInterval)
	}
	if c.Idle.Debounce < 0 {
		add("idle.debounce", "must not be negative, got %s", c.Idle.Debounce)
	}

	switch c.Store.Backend {
	case "file", "sqlite":
	default:
		add("store.backend", "must be file or sqlite, got %q", c.Store.Backend)
	}
	if c.Store.Path == "" {
		add("store.path", "is required")
	}

	if !logLevels[c.Log.Level] {
		add("log.level", "must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 1 {
		add("log.max_size_mb", "must be at least 1, got %d", c.Log.MaxSizeMB)
	}
	return errs
}
