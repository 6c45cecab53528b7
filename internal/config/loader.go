package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that point at optional config files.
const (
	EnvPrefix  = "BOWLING_"
	EnvFileVar = "BOWLING_ENV_FILE"
	ConfigVar  = "BOWLING_CONFIG"
)

// Load builds a Config by layering defaults, optional files and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BOWLING_CONFIG is set
//  3. env (prefix BOWLING_), including variables read from the dotenv
//     file named by BOWLING_ENV_FILE. Variables already set in the
//     process win over the dotenv file.
func Load(_ context.Context) (*Config, error) {
	base := New()

	if path := os.Getenv(EnvFileVar); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, path, err)
		}
	}

	k := koanf.New(".")

	if path := os.Getenv(ConfigVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: config file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// BOWLING_QUEUE_SIZE -> queue_size; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
