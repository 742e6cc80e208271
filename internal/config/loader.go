package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
)

// Environment variables consulted by Load.
const (
	EnvPrefix = "SMARTHRM_"
	EnvFile   = "SMARTHRM_CONFIG"

	keywordsKey = "failure_keywords"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SMARTHRM_CONFIG is set
//  3. env (prefix SMARTHRM_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// SMARTHRM_TIMEOUT_MS -> timeout_ms; keys are flat so underscores are kept.
	// SMARTHRM_FAILURE_KEYWORDS is a comma-separated list.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == keywordsKey {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	// Lists replace the default instead of merging into it.
	cfg := *base
	cfg.FailureKeywords = nil
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if !k.Exists(keywordsKey) {
		cfg.FailureKeywords = base.FailureKeywords
	}

	cfg.FailureKeywords = lo.Uniq(lo.Compact(lo.Map(cfg.FailureKeywords, func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitList(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
