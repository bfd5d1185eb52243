package driver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/unisql/unisql/observability"
)

// Tracer is the span-creation interface the driver instruments through. The
// unisql tracer package provides the OpenTelemetry-backed implementation.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span)
	RecordErrorOnSpan(span traceSpan.Span, err error)
}

type opContextKey struct{}

type opContext struct {
	model     string
	operation string
}

// WithOperation attaches the upstream execution context (model name +
// operation name) to ctx. It is consumed by instrumentation only and never
// affects results.
func WithOperation(ctx context.Context, model, operation string) context.Context {
	return context.WithValue(ctx, opContextKey{}, opContext{model: model, operation: operation})
}

// OperationFromContext returns the model and operation attached by
// WithOperation, or empty strings.
func OperationFromContext(ctx context.Context) (model, operation string) {
	if oc, ok := ctx.Value(opContextKey{}).(opContext); ok {
		return oc.model, oc.operation
	}
	return "", ""
}

// observe wraps a result-producing operation with tracing, query logging and
// observer notification. It adds zero behavioral difference: the wrapped
// call's result and error are returned untouched.
func (d *Driver) observe(ctx context.Context, op, sqlText string, paramCount int, fn func(context.Context) (*Result, error)) (*Result, error) {
	ctx, span, start := d.beginOp(ctx, op, sqlText, paramCount)

	res, err := fn(ctx)

	size := int64(-1)
	if res != nil {
		size = res.RowCount
	}
	d.endOp(ctx, span, op, sqlText, start, size, err)
	return res, err
}

// observeErr is observe for operations without a result value.
func (d *Driver) observeErr(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span, start := d.beginOp(ctx, op, "", 0)
	err := fn(ctx)
	d.endOp(ctx, span, op, "", start, -1, err)
	return err
}

func (d *Driver) beginOp(ctx context.Context, op, sqlText string, paramCount int) (context.Context, traceSpan.Span, time.Time) {
	var span traceSpan.Span
	if d.tracer != nil {
		model, operation := OperationFromContext(ctx)
		ctx, span = d.tracer.StartSpan(ctx, "unisql."+op)
		span.SetAttributes(
			attribute.String("db.system", string(d.adapter.Dialect())),
			attribute.String("db.driver", d.adapter.Name()),
		)
		if sqlText != "" {
			span.SetAttributes(
				attribute.String("db.statement", sqlText),
				attribute.Int("db.parameter_count", paramCount),
			)
		}
		if model != "" {
			span.SetAttributes(attribute.String("db.model", model))
		}
		if operation != "" {
			span.SetAttributes(attribute.String("db.operation", operation))
		}
	}
	return ctx, span, time.Now()
}

func (d *Driver) endOp(ctx context.Context, span traceSpan.Span, op, sqlText string, start time.Time, size int64, err error) {
	duration := time.Since(start)
	model, operation := OperationFromContext(ctx)

	fields := map[string]interface{}{
		"driver":      d.adapter.Name(),
		"operation":   op,
		"duration_ms": duration.Milliseconds(),
	}
	if sqlText != "" {
		fields["sql"] = sqlText
	}
	if model != "" {
		fields["model"] = model
	}
	if operation != "" {
		fields["model_operation"] = operation
	}

	if err != nil {
		// Nested layers re-observe the same error; log it once.
		if !markErrorLogged(err) {
			d.logger.Error("database operation failed", err, fields)
		}
	} else {
		if size >= 0 {
			fields["rows"] = size
		}
		d.logger.Debug("database operation completed", nil, fields)
	}

	if span != nil {
		if err != nil && d.tracer != nil {
			d.tracer.RecordErrorOnSpan(span, err)
		}
		span.End()
	}

	if d.observer != nil {
		resource := d.adapter.Name()
		if model != "" {
			resource = model
		}
		d.observer.ObserveOperation(observability.OperationContext{
			Component:   "driver",
			Operation:   op,
			Resource:    resource,
			SubResource: operation,
			Duration:    duration,
			Error:       err,
			Size:        size,
			Metadata: map[string]interface{}{
				"dialect": string(d.adapter.Dialect()),
				"driver":  d.adapter.Name(),
			},
		})
	}
}
