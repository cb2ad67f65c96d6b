// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults come from New; file and env layers override them in Load.
// - Env keys use the CINESYNC_ prefix, e.g. CINESYNC_ADDR, CINESYNC_WORKER_COUNT.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the logger to JSON output.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// IngestQueueSize bounds the in-memory ingestion queue.
	IngestQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the ingestion idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the record store.
	ShardCount int `koanf:"shard_count"`

	// SectionSize caps each home-feed section.
	SectionSize int `koanf:"section_size"`

	// MaxCandidates bounds the candidate pool fetched per ranking request.
	MaxCandidates int `koanf:"max_candidates"`

	// BlendTopSize and BlendBucketSize size the blend outputs.
	BlendTopSize    int `koanf:"blend_top_size"`
	BlendBucketSize int `koanf:"blend_bucket_size"`

	// TMDBBaseURL and TMDBAPIKey configure the metadata provider client.
	// An empty key disables runtime enrichment during ingestion.
	TMDBBaseURL string `koanf:"tmdb_base_url"`
	TMDBAPIKey  string `koanf:"tmdb_api_key"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogJSON:         false,
		Addr:            ":8080",
		IngestQueueSize: 10_000,
		WorkerCount:     runtime.NumCPU() * 2,
		DedupeSize:      100_000,
		ShardCount:      8,
		SectionSize:     20,
		MaxCandidates:   2_000,
		BlendTopSize:    10,
		BlendBucketSize: 20,
		TMDBBaseURL:     "https://api.themoviedb.org/3",
		TMDBAPIKey:      "",
	}
}
