// Package observability defines the side-channel operation sink shared by
// every unisql package.
//
// An Observer receives one OperationContext per completed operation
// (query, transaction, connect, batch, ...). Observers are strictly
// side-channel: they must never influence the outcome of the operation
// they observe, and packages must work identically with a nil Observer.
package observability

import "time"

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package ("driver", "postgres", "sqlite", ...).
	Component string

	// Operation is the logical operation name ("execute", "transaction",
	// "batch", "connect", "disconnect").
	Operation string

	// Resource is the primary resource the operation touched. For query
	// operations this is the model name when one was attached to the
	// context, otherwise the driver name.
	Resource string

	// SubResource carries additional context, e.g. the compiler-supplied
	// operation name ("findMany", "createOne").
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is non-nil when the operation failed.
	Error error

	// Size is an operation-specific magnitude: rows returned/affected for
	// queries, statement count for batches.
	Size int64

	// Metadata holds free-form extra attributes.
	Metadata map[string]interface{}
}

// Observer consumes operation reports.
//
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
