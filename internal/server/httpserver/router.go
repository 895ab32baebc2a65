// Package httpserver provides the HTTP server for quiver.
package httpserver

import (
	"net/http"

	"github.com/quiverdb/quiver/internal/core/service"
	"github.com/quiverdb/quiver/internal/server/httpserver/handler"
	"github.com/quiverdb/quiver/internal/telemetry/logger"
	"github.com/quiverdb/quiver/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// KVService handles key/value operations.
	KVService *service.KVService

	// Metrics is the application metrics registry.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	// RateLimit is the per-IP rate limit (requests/second, 0 disables).
	RateLimit float64

	// RateBurst is the per-IP burst allowance.
	RateBurst int

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		RateLimit:   1000,
		RateBurst:   2000,
		EnableAudit: true,
	}
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.KVService, cfg.Logger)

	// Order: Recover -> RequestID -> Instrument -> RateLimit -> Audit -> Handler
	apiMiddlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
		Instrument(cfg.Metrics),
	}
	if cfg.RateLimit > 0 {
		apiMiddlewares = append(apiMiddlewares, RateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	if cfg.EnableAudit {
		apiMiddlewares = append(apiMiddlewares, Audit(cfg.Logger))
	}
	apiHandler := Chain(h, apiMiddlewares...)

	mux := http.NewServeMux()

	// Health endpoints bypass rate limiting and audit
	probeHandler := Chain(h, Recover(cfg.Logger), RequestID())
	mux.Handle("GET /health", probeHandler)
	mux.Handle("GET /ready", probeHandler)

	// Metrics endpoint uses Prometheus exposition format, not the
	// JSON envelope
	mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(cfg.Logger)))

	// Key/value endpoints
	mux.Handle("POST /kv", apiHandler)
	mux.Handle("GET /kv/{key}", apiHandler)
	mux.Handle("DELETE /kv/{key}", apiHandler)

	// Admin endpoints
	mux.Handle("GET /admin/v1/status", apiHandler)
	mux.Handle("POST /admin/v1/flush", apiHandler)
	mux.Handle("POST /admin/v1/cleanup", apiHandler)

	return mux
}
