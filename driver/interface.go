package driver

import (
	"context"
	"time"
)

// Dialect identifies a SQL backend family requiring distinct placeholder
// syntax and feature set.
type Dialect string

const (
	DialectPostgres Dialect = "postgresql"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// Capabilities declares which cross-cutting features a backend supports.
// The transaction controller and the batch executor branch on these flags
// only; they never match on adapter names.
type Capabilities struct {
	// Transactions is true when the backend can open an interactive
	// transaction (BEGIN ... COMMIT/ROLLBACK). Stateless HTTP backends
	// cannot.
	Transactions bool

	// Batch is true when the backend exposes a native primitive executing
	// multiple statements atomically without an explicit transaction issued
	// by this layer.
	Batch bool
}

// Adapter is implemented once per backend. It describes the backend's
// dialect and capabilities and knows how to create a live connection
// handle. Adapters must be cheap to construct; all I/O happens in Connect.
type Adapter interface {
	// Name returns a stable identifier for logs and metrics
	// (e.g. "postgres-pgx", "sqlite3").
	Name() string

	// Dialect returns the SQL dialect the backend speaks.
	Dialect() Dialect

	// Capabilities returns the backend's capability flags.
	Capabilities() Capabilities

	// Connect creates the backend client (a pool for pooled engines, a
	// handle for embedded ones). Called lazily, at most once per live
	// client, by the Driver.
	Connect(ctx context.Context) (Conn, error)
}

// Conn is a live backend client owned by exactly one Driver.
type Conn interface {
	// Execute runs one statement. sql is already rendered in the backend's
	// placeholder syntax. Implementations must translate backend-native
	// errors into the taxonomy of this package before returning.
	Execute(ctx context.Context, sql string, params []any) (*Result, error)

	// Begin opens a new top-level transaction, translating the portable
	// isolation level into the dialect's syntax. Adapters whose backend
	// cannot support transactions return a *FeatureNotSupportedError.
	Begin(ctx context.Context, opts TxOptions) (Tx, error)

	// Close releases the client and all its resources.
	Close(ctx context.Context) error
}

// Batcher is implemented by connections whose backend has a native atomic
// batch primitive. The batch executor uses it only when the adapter also
// reports Capabilities.Batch.
type Batcher interface {
	ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error)
}

// Tx is an open transaction handle. Statements issued sequentially against
// the same Tx execute in order.
type Tx interface {
	Execute(ctx context.Context, sql string, params []any) (*Result, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Result is the canonical result shape every execute call produces.
type Result struct {
	// Columns holds the result column names in order. Empty for writes.
	Columns []string

	// Rows holds one map per returned row, keyed by column name.
	Rows []map[string]any

	// RowCount is the number of rows returned for reads and the number of
	// rows affected for writes.
	RowCount int64
}

// Statement is a parameter-carrying SQL fragment using the neutral `?`
// placeholder syntax. The statement builder renders it per dialect before
// execution.
type Statement struct {
	SQL    string
	Params []any

	// Fields optionally declares result field types so the result-parser
	// middleware can coerce backend-specific encodings (0/1 booleans,
	// JSON-text relations). Statements without declarations pass through
	// unparsed.
	Fields []Field
}

// BatchQuery is one element of a batch request, in neutral placeholder
// syntax like Statement.
type BatchQuery struct {
	SQL    string
	Params []any
}

// IsolationLevel is the portable transaction isolation enum. Adapters
// translate it into their dialect's syntax; backends that cannot express a
// requested level log a warning rather than silently dropping it.
type IsolationLevel string

const (
	IsolationDefault         IsolationLevel = ""
	IsolationReadUncommitted IsolationLevel = "READ UNCOMMITTED"
	IsolationReadCommitted   IsolationLevel = "READ COMMITTED"
	IsolationRepeatableRead  IsolationLevel = "REPEATABLE READ"
	IsolationSerializable    IsolationLevel = "SERIALIZABLE"
)

// TxOptions carries per-transaction settings, consumed once on entry.
type TxOptions struct {
	Isolation IsolationLevel
	Timeout   time.Duration
}

// TxOption customizes one transaction.
type TxOption func(*TxOptions)

// WithIsolation requests a portable isolation level for the transaction.
func WithIsolation(level IsolationLevel) TxOption {
	return func(o *TxOptions) { o.Isolation = level }
}

// WithTxTimeout bounds the whole transaction body, begin to commit.
func WithTxTimeout(d time.Duration) TxOption {
	return func(o *TxOptions) { o.Timeout = d }
}

func resolveTxOptions(opts []TxOption) TxOptions {
	var options TxOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Client is the uniform operation contract consumers program against. It is
// implemented by *Driver and, transparently, by the transaction-bound view
// handed to Transaction callbacks, so code written against "a Client"
// becomes transaction-scoped without changes.
type Client interface {
	// Connect eagerly initializes the backend client. Optional; the first
	// executing call initializes lazily.
	Connect(ctx context.Context) error

	// Disconnect closes the backend client and resets the driver for
	// reuse. On a transaction-bound view it is a no-op.
	Disconnect(ctx context.Context) error

	// Execute renders the statement for the backend's dialect and runs it.
	Execute(ctx context.Context, stmt Statement) (*Result, error)

	// ExecuteRaw runs SQL text verbatim; the caller supplies
	// dialect-correct placeholders.
	ExecuteRaw(ctx context.Context, sql string, params ...any) (*Result, error)

	// ExecuteBatch runs an ordered list of independent statements under the
	// strongest guarantee the backend offers: native atomic batch, one
	// wrapping transaction, or best-effort sequential execution with an
	// explicit non-atomicity warning.
	ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error)

	// Transaction runs fn inside a transaction, committing on nil and
	// rolling back on error. Nested calls nest via savepoints.
	Transaction(ctx context.Context, fn func(tx Client) error, opts ...TxOption) error

	Name() string
	Dialect() Dialect
	Capabilities() Capabilities
}

// Logger defines the interface for logging operations within the driver
// package. Any implementation with these methods can be plugged in; the
// unisql logger package provides the zap-backed production one.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}
