package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ChartsComputed  prometheus.Counter
	ChartFailures   prometheus.Counter
	ProfilesCreated prometheus.Counter
	RateLimited     prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return newWith(prometheus.DefaultRegisterer)
}

// NewForTest registers metrics on a private registry so parallel test
// packages do not collide on duplicate registration.
func NewForTest() *Metrics {
	return newWith(prometheus.NewRegistry())
}

func newWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChartsComputed: factory.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_charts_computed_total",
			Help: "Total number of full chart computations served",
		}),
		ChartFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_chart_failures_total",
			Help: "Total number of chart computations that failed",
		}),
		ProfilesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_profiles_created_total",
			Help: "Total number of birth profiles created",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "jyotish_requests_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jyotish_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one served request in the latency histogram.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.RequestLatency.WithLabelValues(route, status).Observe(seconds)
}
