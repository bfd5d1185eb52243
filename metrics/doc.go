// Package metrics provides Prometheus-based monitoring for unisql-based
// applications.
//
// It owns a dedicated Prometheus registry exposed on a configurable HTTP
// endpoint, optionally with the default Go runtime and process collectors,
// and integrates with the Fx dependency injection framework for lifecycle
// management.
//
// # Architecture
//
//   - Metrics struct: the registry plus the exposition HTTP server
//   - NewMetrics constructor: returns *Metrics (concrete type)
//   - OperationObserver: an observability.Observer turning every database
//     operation into counters and histograms
//   - FX module: provides *Metrics and the Observer, and starts/stops the
//     exposition server with the application
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    EnableDefaultCollectors: true,
//	    ServiceName:             "orders-api",
//	})
//	go m.Server.ListenAndServe()
//
//	db := driver.New(adapter,
//	    driver.WithObserver(metrics.NewOperationObserver(m, "orders")),
//	)
package metrics
