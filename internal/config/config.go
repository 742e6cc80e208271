// Package config defines process configuration and its loading hooks.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers defaults, an optional YAML file and SMARTHRM_* env vars.
//   - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the console listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// BaseURL is the scheme and host of the HR backend.
	BaseURL string `koanf:"base_url"`

	// APIRoot is prefixed to every request path.
	APIRoot string `koanf:"api_root"`

	// TimeoutMS is the fixed per-call timeout.
	TimeoutMS int `koanf:"timeout_ms"`

	// FailureKeywords mark plain-text replies as failures.
	FailureKeywords []string `koanf:"failure_keywords"`

	// FallbackMessage is shown when a transport error carries no message.
	FallbackMessage string `koanf:"fallback_message"`

	// NotificationHistory bounds the notifications kept for the console.
	NotificationHistory int `koanf:"notification_history"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9090",
		BaseURL:             "http://localhost:8080",
		APIRoot:             "/api",
		TimeoutMS:           10_000,
		FailureKeywords:     []string{"错误", "失败"},
		FallbackMessage:     "请求失败",
		NotificationHistory: 100,
	}
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TimeoutMS <= 0:
		return fmt.Errorf("%w: timeout_ms must be positive", ErrInvalidConfig)
	case len(c.FailureKeywords) == 0:
		return fmt.Errorf("%w: failure_keywords must not be empty", ErrInvalidConfig)
	case c.NotificationHistory <= 0:
		return fmt.Errorf("%w: notification_history must be positive", ErrInvalidConfig)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.APIRoot != "" && !strings.HasPrefix(c.APIRoot, "/") {
		return fmt.Errorf("%w: api_root %q must start with /", ErrInvalidConfig, c.APIRoot)
	}
	return nil
}
