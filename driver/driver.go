package driver

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/unisql/unisql/observability"
)

// Driver is the long-lived handle for one backend. It owns the underlying
// backend client exclusively (created lazily, at most one live instance at a
// time) and layers the uniform contract (lazy acquisition, transactions
// with savepoint nesting, tiered batch execution, result parsing and
// instrumentation) over the adapter's primitives.
//
// Driver is safe for concurrent use.
type Driver struct {
	adapter  Adapter
	logger   Logger
	tracer   Tracer
	observer observability.Observer
	parsers  *parserChain

	// initGroup collapses concurrent first-time acquisitions into a single
	// Connect attempt shared by all waiters.
	initGroup singleflight.Group

	mu            sync.Mutex
	conn          Conn
	disconnecting bool

	// spCounter numbers savepoints; scoped to this instance so independent
	// drivers never collide.
	spCounter atomic.Uint64

	// txDepth tracks the current transaction nesting depth for
	// observability.
	txDepth atomic.Int32
}

var _ Client = (*Driver)(nil)

// Option customizes a Driver at construction.
type Option func(*Driver)

// WithLogger attaches a structured logger. Without one the driver is
// silent.
func WithLogger(logger Logger) Option {
	return func(d *Driver) { d.logger = logger }
}

// WithTracer attaches a tracer; every public operation then runs inside a
// span. Purely side-channel.
func WithTracer(tracer Tracer) Option {
	return func(d *Driver) { d.tracer = tracer }
}

// WithObserver attaches an operation observer (e.g. the Prometheus-backed
// one from the metrics package). Purely side-channel.
func WithObserver(observer observability.Observer) Option {
	return func(d *Driver) { d.observer = observer }
}

// WithResultParsers installs the result-parser middleware chain, applied in
// the given order with a terminal no-op.
func WithResultParsers(parsers ...ResultParser) Option {
	return func(d *Driver) { d.parsers = newParserChain(parsers) }
}

// New creates a Driver for the given adapter. No I/O happens until the
// first call that needs a live connection (or an explicit Connect).
func New(adapter Adapter, opts ...Option) *Driver {
	d := &Driver{
		adapter: adapter,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the adapter's identifier for logs and metrics.
func (d *Driver) Name() string { return d.adapter.Name() }

// Dialect returns the backend's SQL dialect.
func (d *Driver) Dialect() Dialect { return d.adapter.Dialect() }

// Capabilities returns the backend's capability flags.
func (d *Driver) Capabilities() Capabilities { return d.adapter.Capabilities() }

// getClient returns the live backend client, creating it on first call.
// Concurrent callers before the first successful initialization all await
// the same attempt; exactly one Adapter.Connect runs. After success the
// client is cached. A failed initialization propagates to every waiter and
// leaves the driver ready for a retry.
func (d *Driver) getClient(ctx context.Context) (Conn, error) {
	d.mu.Lock()
	if d.disconnecting {
		d.mu.Unlock()
		return nil, NewConnectionError("driver is disconnecting", nil)
	}
	if d.conn != nil {
		conn := d.conn
		d.mu.Unlock()
		return conn, nil
	}
	d.mu.Unlock()

	v, err, _ := d.initGroup.Do("connect", func() (any, error) {
		// Re-check under the lock: a concurrent caller may have finished
		// initialization, or a disconnect may have started, between the
		// fast path above and this call winning the flight.
		d.mu.Lock()
		if d.disconnecting {
			d.mu.Unlock()
			return nil, NewConnectionError("driver is disconnecting", nil)
		}
		if d.conn != nil {
			conn := d.conn
			d.mu.Unlock()
			return conn, nil
		}
		d.mu.Unlock()

		conn, err := d.adapter.Connect(ctx)
		if err != nil {
			d.logger.Error("backend initialization failed", err, map[string]interface{}{
				"driver":  d.adapter.Name(),
				"dialect": string(d.adapter.Dialect()),
			})
			return nil, err
		}

		d.mu.Lock()
		if d.disconnecting {
			d.mu.Unlock()
			_ = conn.Close(context.WithoutCancel(ctx))
			return nil, NewConnectionError("driver is disconnecting", nil)
		}
		d.conn = conn
		d.mu.Unlock()

		d.logger.Info("backend client initialized", nil, map[string]interface{}{
			"driver":  d.adapter.Name(),
			"dialect": string(d.adapter.Dialect()),
		})
		return conn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Conn), nil
}

// Connect eagerly initializes the backend client. Calling it is optional;
// the first executing call initializes lazily.
func (d *Driver) Connect(ctx context.Context) error {
	return d.observeErr(ctx, "connect", func(ctx context.Context) error {
		_, err := d.getClient(ctx)
		return err
	})
}

// Disconnect closes the backend client and resets all internal state so the
// driver can be reused by a subsequent call. It is safe to call while an
// initialization is in flight: new acquisitions are rejected first, then any
// pending initialization is awaited (its error, if any, is swallowed; a
// failed init has nothing to close) before the live client is closed.
func (d *Driver) Disconnect(ctx context.Context) error {
	return d.observeErr(ctx, "disconnect", func(ctx context.Context) error {
		d.mu.Lock()
		if d.disconnecting {
			d.mu.Unlock()
			return nil
		}
		d.disconnecting = true
		d.mu.Unlock()

		// Join any initialization in flight. When none is pending this runs
		// the no-op immediately; when one is pending it blocks until that
		// shared attempt finishes.
		_, _, _ = d.initGroup.Do("connect", func() (any, error) { return nil, nil })

		d.mu.Lock()
		conn := d.conn
		d.conn = nil
		d.disconnecting = false
		d.mu.Unlock()
		d.spCounter.Store(0)
		d.txDepth.Store(0)

		if conn == nil {
			return nil
		}
		if err := conn.Close(ctx); err != nil {
			return NewConnectionError("failed to close backend client", err)
		}
		d.logger.Info("backend client closed", nil, map[string]interface{}{
			"driver": d.adapter.Name(),
		})
		return nil
	})
}

// Execute renders stmt for the backend's dialect, runs it, and normalizes
// the result through the parser chain.
func (d *Driver) Execute(ctx context.Context, stmt Statement) (*Result, error) {
	sqlText := Render(stmt.SQL, d.adapter.Dialect())
	return d.observe(ctx, "execute", sqlText, len(stmt.Params), func(ctx context.Context) (*Result, error) {
		conn, err := d.getClient(ctx)
		if err != nil {
			return nil, err
		}
		res, err := conn.Execute(ctx, sqlText, stmt.Params)
		if err != nil {
			return nil, err
		}
		_, operation := OperationFromContext(ctx)
		return d.parsers.parse(operation, stmt.Fields, res), nil
	})
}

// ExecuteRaw runs SQL text verbatim with the given parameters. The caller
// supplies dialect-correct placeholders; no rendering happens.
func (d *Driver) ExecuteRaw(ctx context.Context, sql string, params ...any) (*Result, error) {
	return d.observe(ctx, "executeRaw", sql, len(params), func(ctx context.Context) (*Result, error) {
		conn, err := d.getClient(ctx)
		if err != nil {
			return nil, err
		}
		res, err := conn.Execute(ctx, sql, params)
		if err != nil {
			return nil, err
		}
		_, operation := OperationFromContext(ctx)
		return d.parsers.parse(operation, nil, res), nil
	})
}

// nopLogger keeps the driver silent when no logger is configured.
type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}
