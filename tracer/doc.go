// Package tracer wraps OpenTelemetry tracing for the unisql packages.
//
// The driver package accepts any implementation of its Tracer interface;
// this package provides the production one, backed by the OpenTelemetry SDK
// with an optional OTLP HTTP exporter.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//	tc := tracer.NewClient(tracer.Config{
//	    ServiceName:  "orders-api",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}, log)
//
//	ctx, span := tc.StartSpan(ctx, "db.execute")
//	defer span.End()
package tracer
