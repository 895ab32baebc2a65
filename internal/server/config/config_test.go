package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Verify(cfg))

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.HTTP.Addr)
	assert.Equal(t, ".quiver/", cfg.Storage.DataDir)
	assert.Equal(t, 5, cfg.Storage.Shards)
	assert.False(t, cfg.Storage.Load)
	assert.Equal(t, time.Second, cfg.Storage.FlushInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Storage.CleanupInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestVerifyAllowsDisabledRateLimit(t *testing.T) {
	cfg := Default()
	cfg.Server.HTTP.RateLimit = 0
	cfg.Server.HTTP.RateBurst = 0

	assert.NoError(t, Verify(cfg))
}

func TestVerifyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"empty addr", func(c *ServerConfig) { c.Server.HTTP.Addr = "" }},
		{"negative rate limit", func(c *ServerConfig) { c.Server.HTTP.RateLimit = -1 }},
		{"zero rate burst", func(c *ServerConfig) { c.Server.HTTP.RateBurst = 0 }},
		{"empty data dir", func(c *ServerConfig) { c.Storage.DataDir = "" }},
		{"zero shards", func(c *ServerConfig) { c.Storage.Shards = 0 }},
		{"negative shards", func(c *ServerConfig) { c.Storage.Shards = -3 }},
		{"zero flush interval", func(c *ServerConfig) { c.Storage.FlushInterval = 0 }},
		{"zero cleanup interval", func(c *ServerConfig) { c.Storage.CleanupInterval = 0 }},
		{"bad log level", func(c *ServerConfig) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *ServerConfig) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, Verify(cfg))
		})
	}
}
