package telemetry

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests that hit no registered route, so scanners
// probing random paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// HTTPMetrics holds the request counter, latency histogram and in-flight gauge
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
}

// NewHTTPMetrics registers the HTTP metrics on reg
func NewHTTPMetrics(reg prometheus.Registerer, namespace string) (*HTTPMetrics, error) {
	requests, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Processed HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	duration, err := registerCollector(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   HTTPDurationBuckets,
	}, []string{"method", "route"}))
	if err != nil {
		return nil, err
	}

	inflight, err := registerCollector(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_inflight_requests",
		Help:      "Requests currently being served by method and route.",
	}, []string{"method", "route"}))
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{requests: requests, duration: duration, inflight: inflight}, nil
}

// Begin marks a request as in flight and returns the function that finishes it
func (m *HTTPMetrics) Begin(method, route string) func(status int) {
	method = strings.ToUpper(method)
	if route == "" {
		route = unmatchedRoute
	}
	start := time.Now()
	m.inflight.WithLabelValues(method, route).Inc()

	return func(status int) {
		m.inflight.WithLabelValues(method, route).Dec()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
}
