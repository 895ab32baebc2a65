// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "0.0.0.0:8000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRateLimit       = 1000.0
	DefaultRateBurst       = 2000

	DefaultDataDir         = ".quiver/"
	DefaultShards          = 5
	DefaultFlushInterval   = time.Second
	DefaultCleanupInterval = 500 * time.Millisecond

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
				RateLimit:       DefaultRateLimit,
				RateBurst:       DefaultRateBurst,
			},
		},
		Storage: StorageSection{
			DataDir:         DefaultDataDir,
			Shards:          DefaultShards,
			Load:            false,
			FlushInterval:   DefaultFlushInterval,
			CleanupInterval: DefaultCleanupInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
