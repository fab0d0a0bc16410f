package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"jyotish/internal/platform/metrics"
	"jyotish/pkg/platform/httputil"
	"jyotish/pkg/platform/middleware/metadata"
	"jyotish/pkg/requestcontext"
)

type Middleware struct {
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	limit    int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the limiter off entirely (demo and test setups).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) { m.disabled = disabled }
}

func WithMetrics(mtr *metrics.Metrics) Option {
	return func(m *Middleware) { m.metrics = mtr }
}

func NewMiddleware(store Store, logger *slog.Logger, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		logger: logger,
		limit:  limit,
		window: window,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Limit enforces the per-IP budget. Store failures let the request
// through; an unavailable limiter should not take the API down with it.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = metadata.ClientIPFromRequest(r)
		}

		result, err := m.store.Allow(ctx, ip, m.limit, m.window)
		if err != nil {
			m.logger.WarnContext(ctx, "rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		addLimitHeaders(w, result)

		if !result.Allowed {
			if m.metrics != nil {
				m.metrics.RateLimited.Inc()
			}
			retryAfter := result.RetryAfter(requestcontext.Now(ctx))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":             "rate_limit_exceeded",
				"error_description": "too many requests from this address, try again later",
				"retry_after":       retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addLimitHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
