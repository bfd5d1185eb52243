package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and the HTTP exposition server.
type Metrics struct {
	Server      *http.Server
	Registry    *prometheus.Registry
	serviceName string
}

// NewMetrics creates a registry (optionally with the default Go/process
// collectors), labels everything with the service name, and prepares an HTTP
// server serving the exposition format on cfg.Address.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m := &Metrics{
		Server: &http.Server{
			Addr:    cfg.Address,
			Handler: handler,
		},
		Registry:    registry,
		serviceName: cfg.ServiceName,
	}

	if cfg.EnableDefaultCollectors {
		m.registerer().MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	return m
}

// registerer returns the registry wrapped with the service label, so every
// collector registered through it carries the same label as the default
// collectors.
func (m *Metrics) registerer() prometheus.Registerer {
	if m.serviceName == "" {
		return m.Registry
	}
	return prometheus.WrapRegistererWith(prometheus.Labels{"service": m.serviceName}, m.Registry)
}
