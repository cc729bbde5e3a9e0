package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CustomerMetrics counts customer write operations by outcome.
// It satisfies the customer application Recorder.
type CustomerMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewCustomerMetrics registers the customer operation metrics on reg
func NewCustomerMetrics(reg prometheus.Registerer, namespace string) (*CustomerMetrics, error) {
	operations, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "customer",
		Name:      "operations_total",
		Help:      "Customer write operations by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}

	duration, err := registerCollector(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "customer",
		Name:      "operation_duration_seconds",
		Help:      "Customer write operation latency, directory lookups included.",
		Buckets:   DBDurationBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	return &CustomerMetrics{operations: operations, duration: duration}, nil
}

// ObserveOperation records one finished operation
func (m *CustomerMetrics) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
