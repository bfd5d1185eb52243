package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/unisql/unisql/driver"
)

// Adapter speaks to an embedded SQLite database through database/sql over
// mattn/go-sqlite3. Transactions are supported; there is no batch primitive,
// so batches fall back to one wrapping transaction.
type Adapter struct {
	cfg Config
}

var _ driver.Adapter = (*Adapter)(nil)

// NewAdapter creates the SQLite adapter. No connection is made until the
// owning Driver first needs one.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "sqlite3" }

func (a *Adapter) Dialect() driver.Dialect { return driver.DialectSQLite }

func (a *Adapter) Capabilities() driver.Capabilities {
	return driver.Capabilities{Transactions: true, Batch: false}
}

// Connect opens the database file and verifies it with a ping. A :memory:
// database lives and dies with this connection, so the pool is pinned to a
// single open connection; sharing the pool across goroutines still works
// because access serializes on that connection.
func (a *Adapter) Connect(ctx context.Context) (driver.Conn, error) {
	db, err := sql.Open("sqlite3", a.cfg.DSN())
	if err != nil {
		return nil, driver.NewConnectionError("failed to open SQLite database", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, driver.NewConnectionError("failed to open SQLite database", err)
	}

	return &conn{db: db}, nil
}

type conn struct {
	db *sql.DB
}

var _ driver.Conn = (*conn)(nil)

func (c *conn) Execute(ctx context.Context, sqlText string, params []any) (*driver.Result, error) {
	return execute(ctx, c.db, sqlText, params)
}

func (c *conn) Begin(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	// SQLite only runs SERIALIZABLE; other requested levels map to the
	// driver default rather than failing.
	sqlTx, err := c.db.BeginTx(ctx, &sql.TxOptions{Isolation: isoLevel(opts.Isolation)})
	if err != nil {
		return nil, translateError(err, "BEGIN", nil)
	}
	return &tx{tx: sqlTx}, nil
}

func (c *conn) Close(ctx context.Context) error {
	if err := c.db.Close(); err != nil {
		return driver.NewConnectionError("failed to close SQLite database", err)
	}
	return nil
}

type tx struct {
	tx *sql.Tx
}

var _ driver.Tx = (*tx)(nil)

func (t *tx) Execute(ctx context.Context, sqlText string, params []any) (*driver.Result, error) {
	return execute(ctx, t.tx, sqlText, params)
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return translateError(err, "COMMIT", nil)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return translateError(err, "ROLLBACK", nil)
	}
	return nil
}

// querier is the shared surface of *sql.DB and *sql.Tx this adapter needs.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execute(ctx context.Context, q querier, sqlText string, params []any) (*driver.Result, error) {
	if driver.ReturnsRows(sqlText) {
		rows, err := q.QueryContext(ctx, sqlText, params...)
		if err != nil {
			return nil, translateError(err, sqlText, params)
		}
		res, err := driver.ScanRows(rows)
		if err != nil {
			return nil, translateError(err, sqlText, params)
		}
		return res, nil
	}

	result, err := q.ExecContext(ctx, sqlText, params...)
	if err != nil {
		return nil, translateError(err, sqlText, params)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, translateError(err, sqlText, params)
	}
	return &driver.Result{RowCount: affected}, nil
}

func isoLevel(level driver.IsolationLevel) sql.IsolationLevel {
	if level == driver.IsolationSerializable {
		return sql.LevelSerializable
	}
	return sql.LevelDefault
}
