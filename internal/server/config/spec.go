// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for quiver-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RateLimit is the per-IP request rate (requests/second).
	// 0 disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// StorageSection configures the store and its maintenance loops.
type StorageSection struct {
	// DataDir is the directory holding shard snapshot files.
	DataDir string `koanf:"data_dir"`

	// Shards is the number of shards the keyspace is split into.
	// Changing it invalidates snapshots written with a different
	// count.
	Shards int `koanf:"shards"`

	// Load restores state from existing snapshots at startup.
	Load bool `koanf:"load"`

	// FlushInterval is the period between snapshot flush passes.
	FlushInterval time.Duration `koanf:"flush_interval"`

	// CleanupInterval is the period between TTL cleanup passes.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
