// Package httptransport assembles the HTTP surface: global middleware,
// feature handlers, and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	charthandler "jyotish/internal/chart/handler"
	"jyotish/internal/platform/metrics"
	"jyotish/internal/platform/middleware"
	profilehandler "jyotish/internal/profile/handler"
	"jyotish/internal/ratelimit"
	"jyotish/pkg/platform/httputil"
	"jyotish/pkg/platform/middleware/metadata"
)

const statusBanner = "Vedic astrology API - sidereal charts, dashas and panchang"

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config collects everything the router composes.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Charts         *charthandler.Handler
	Profiles       *profilehandler.Handler
	Limiter        *ratelimit.Middleware
	Checks         map[string]HealthChecker
	Version        string
	RequestTimeout time.Duration
}

// NewRouter wires the middleware chain and mounts all endpoints. The chart
// and profile routes sit behind the rate limiter; the operational endpoints
// (/healthz, /metrics, the banner) do not.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(cfg.Metrics))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": statusBanner})
	})
	r.Get("/healthz", healthHandler(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		if cfg.Limiter != nil {
			r.Use(cfg.Limiter.Limit)
		}
		cfg.Charts.Register(r)
		cfg.Profiles.Register(r)
	})

	return r
}

type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// healthHandler pings every configured dependency. Any failure degrades the
// overall status and flips the HTTP code to 503.
func healthHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:  "ok",
			Service: "jyotish",
			Version: cfg.Version,
		}
		status := http.StatusOK

		if len(cfg.Checks) > 0 {
			resp.Checks = make(map[string]string, len(cfg.Checks))
			for name, checker := range cfg.Checks {
				if err := checker.Health(r.Context()); err != nil {
					cfg.Logger.WarnContext(r.Context(), "health check failed",
						slog.String("dependency", name), slog.Any("error", err))
					resp.Checks[name] = "unreachable"
					resp.Status = "degraded"
					status = http.StatusServiceUnavailable
				} else {
					resp.Checks[name] = "ok"
				}
			}
		}

		httputil.WriteJSON(w, status, resp)
	}
}
