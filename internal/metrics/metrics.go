// Package metrics exposes the Prometheus collectors of the knock server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Knock attempt results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "knock").
	Namespace string
	// Buckets are the request duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64
	// Registry receives the collectors and backs Handler.
	// Default: a fresh prometheus.Registry.
	Registry *prometheus.Registry
}

// Option configures Metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the collectors.
type Metrics struct {
	registry           *prometheus.Registry
	knockAttempts      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// New registers the collectors.
func New(options ...Option) *Metrics {
	cfg := Config{
		Namespace: "knock",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		registry: cfg.Registry,
		knockAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "attempts_total",
			Help:      "Knock attempts per destination host by result",
		}, []string{"result"}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "validation_failures_total",
			Help:      "Form validation failures by element",
		}, []string{"element"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"method", "status"}),
	}
}

// KnockAttempt counts one knock with result ResultSuccess or ResultFailure.
func (m *Metrics) KnockAttempt(result string) {
	if m == nil {
		return
	}
	m.knockAttempts.WithLabelValues(result).Inc()
}

// ValidationFailures counts one failure per element name.
func (m *Metrics) ValidationFailures(elements ...string) {
	if m == nil {
		return
	}
	for _, name := range elements {
		m.validationFailures.WithLabelValues(name).Inc()
	}
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Middleware times every request passing through next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.ObserveRequest(r.Method, status, time.Since(start))
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
