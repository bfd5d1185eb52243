package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unisql/unisql/observability"
)

// OperationObserver is a Prometheus-backed observability.Observer. It turns
// every observed database operation into an operation counter, an error
// counter and a duration histogram, labeled by component and operation.
type OperationObserver struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	rows       *prometheus.HistogramVec
}

var _ observability.Observer = (*OperationObserver)(nil)

// NewOperationObserver registers the operation metrics on the given
// Metrics registry and returns the observer. The namespace from the Config
// used to build the Metrics is not re-applied here; pass it explicitly when
// a prefix is wanted.
func NewOperationObserver(m *Metrics, namespace string) *OperationObserver {
	labels := []string{"component", "operation"}

	o := &OperationObserver{
		operations: createCounterVec(
			prometheus.BuildFQName(namespace, "unisql", "operations_total"),
			"Total number of database operations, by component and operation.",
			labels,
		),
		failures: createCounterVec(
			prometheus.BuildFQName(namespace, "unisql", "operation_failures_total"),
			"Total number of failed database operations.",
			labels,
		),
		durations: createHistogramVec(
			prometheus.BuildFQName(namespace, "unisql", "operation_duration_seconds"),
			"Database operation latency in seconds.",
			labels,
			prometheus.DefBuckets,
		),
		rows: createHistogramVec(
			prometheus.BuildFQName(namespace, "unisql", "operation_size"),
			"Operation magnitude: rows returned/affected, or batch statement count.",
			labels,
			[]float64{0, 1, 10, 100, 1000, 10000},
		),
	}

	m.registerer().MustRegister(o.operations, o.failures, o.durations, o.rows)
	return o
}

// ObserveOperation implements observability.Observer.
func (o *OperationObserver) ObserveOperation(ctx observability.OperationContext) {
	labels := prometheus.Labels{
		"component": ctx.Component,
		"operation": ctx.Operation,
	}

	o.operations.With(labels).Inc()
	o.durations.With(labels).Observe(ctx.Duration.Seconds())
	if ctx.Size >= 0 {
		o.rows.With(labels).Observe(float64(ctx.Size))
	}
	if ctx.Error != nil {
		o.failures.With(labels).Inc()
	}
}
