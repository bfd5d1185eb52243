package metrics

// DefaultMetricsAddress is used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus metrics
	// HTTP server listens, e.g. ":9090" or "127.0.0.1:9100".
	Address string `yaml:"address" envconfig:"UNISQL_METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime and
	// process collectors are registered automatically.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"UNISQL_METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace sets a global prefix for all metrics registered by this
	// service, e.g. "orders" → "orders_unisql_operations_total".
	Namespace string `yaml:"namespace" envconfig:"UNISQL_METRICS_NAMESPACE"`

	// ServiceName is attached as a common label to all metrics.
	ServiceName string `yaml:"service_name" envconfig:"UNISQL_METRICS_SERVICE_NAME"`
}
