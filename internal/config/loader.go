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
)

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if CINESYNC_CONFIG is set
//  3. env (prefix CINESYNC_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CINESYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Map env keys like CINESYNC_QUEUE_SIZE -> queue_size, preserving
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("CINESYNC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "cinesync_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.IngestQueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.ShardCount < 1:
		return fmt.Errorf("%w: shard_count must be positive", ErrInvalidConfig)
	case c.SectionSize < 1:
		return fmt.Errorf("%w: section_size must be positive", ErrInvalidConfig)
	case c.MaxCandidates < 1:
		return fmt.Errorf("%w: max_candidates must be positive", ErrInvalidConfig)
	case c.TMDBBaseURL == "":
		return fmt.Errorf("%w: tmdb_base_url must not be empty", ErrInvalidConfig)
	}
	return nil
}
