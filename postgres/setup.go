package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unisql/unisql/driver"
)

// Adapter speaks to PostgreSQL through a pgx connection pool. It supports
// interactive transactions and a native atomic batch (the pgx batch
// pipeline wrapped in one transaction), so it never degrades.
type Adapter struct {
	cfg Config
}

var _ driver.Adapter = (*Adapter)(nil)

// NewAdapter creates the Postgres adapter. No connection is made until the
// owning Driver first needs one.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "postgres-pgx" }

func (a *Adapter) Dialect() driver.Dialect { return driver.DialectPostgres }

func (a *Adapter) Capabilities() driver.Capabilities {
	return driver.Capabilities{Transactions: true, Batch: true}
}

// Connect parses the DSN, applies pool limits and verifies connectivity
// with a ping so an unreachable server fails initialization instead of the
// first query.
func (a *Adapter) Connect(ctx context.Context) (driver.Conn, error) {
	poolCfg, err := pgxpool.ParseConfig(a.cfg.DSN())
	if err != nil {
		return nil, driver.NewConnectionError("invalid postgres configuration", err)
	}

	if a.cfg.ConnectionDetails.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(a.cfg.ConnectionDetails.MaxOpenConns)
	}
	if a.cfg.ConnectionDetails.MinIdleConns > 0 {
		poolCfg.MinConns = int32(a.cfg.ConnectionDetails.MinIdleConns)
	}
	if a.cfg.ConnectionDetails.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = a.cfg.ConnectionDetails.ConnMaxLifetime
	} else {
		poolCfg.MaxConnLifetime = time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, driver.NewConnectionError("failed to create postgres pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, driver.NewConnectionError("failed to connect to postgres", err)
	}

	return &conn{pool: pool}, nil
}

// conn wraps the pgx pool. Each top-level transaction acquires its own
// pooled connection, so concurrent transactions never share a handle.
type conn struct {
	pool *pgxpool.Pool
}

var (
	_ driver.Conn    = (*conn)(nil)
	_ driver.Batcher = (*conn)(nil)
)

func (c *conn) Execute(ctx context.Context, sql string, params []any) (*driver.Result, error) {
	res, err := execute(ctx, c.pool, sql, params)
	if err != nil {
		return nil, translateError(err, sql, params)
	}
	return res, nil
}

func (c *conn) Begin(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	pgxTx, err := c.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: isoLevel(opts.Isolation)})
	if err != nil {
		return nil, translateError(err, "BEGIN", nil)
	}
	return &tx{tx: pgxTx}, nil
}

// ExecuteBatch pipelines all statements in a pgx batch inside one
// transaction, making the whole group atomic in a single round trip.
func (c *conn) ExecuteBatch(ctx context.Context, queries []driver.BatchQuery) ([]*driver.Result, error) {
	pgxTx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, translateError(err, "BEGIN", nil)
	}
	defer pgxTx.Rollback(context.WithoutCancel(ctx))

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Params...)
	}

	results, batchErr := readBatchResults(pgxTx.SendBatch(ctx, batch), queries)
	if batchErr != nil {
		return nil, batchErr
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return nil, translateError(err, "COMMIT", nil)
	}
	return results, nil
}

func readBatchResults(br pgx.BatchResults, queries []driver.BatchQuery) ([]*driver.Result, error) {
	defer br.Close()

	results := make([]*driver.Result, 0, len(queries))
	for _, q := range queries {
		if driver.ReturnsRows(q.SQL) {
			rows, err := br.Query()
			if err != nil {
				return nil, translateError(err, q.SQL, q.Params)
			}
			res, err := collectRows(rows)
			if err != nil {
				return nil, translateError(err, q.SQL, q.Params)
			}
			results = append(results, res)
			continue
		}

		tag, err := br.Exec()
		if err != nil {
			return nil, translateError(err, q.SQL, q.Params)
		}
		results = append(results, &driver.Result{RowCount: tag.RowsAffected()})
	}
	return results, nil
}

func (c *conn) Close(ctx context.Context) error {
	c.pool.Close()
	return nil
}

// tx adapts pgx.Tx to the driver transaction contract.
type tx struct {
	tx pgx.Tx
}

var _ driver.Tx = (*tx)(nil)

func (t *tx) Execute(ctx context.Context, sql string, params []any) (*driver.Result, error) {
	res, err := execute(ctx, t.tx, sql, params)
	if err != nil {
		return nil, translateError(err, sql, params)
	}
	return res, nil
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return translateError(err, "COMMIT", nil)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return translateError(err, "ROLLBACK", nil)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func execute(ctx context.Context, q querier, sql string, params []any) (*driver.Result, error) {
	if driver.ReturnsRows(sql) {
		rows, err := q.Query(ctx, sql, params...)
		if err != nil {
			return nil, err
		}
		return collectRows(rows)
	}

	tag, err := q.Exec(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	return &driver.Result{RowCount: tag.RowsAffected()}, nil
}

func collectRows(rows pgx.Rows) (*driver.Result, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	res := &driver.Result{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.RowCount = int64(len(res.Rows))
	return res, nil
}

func isoLevel(level driver.IsolationLevel) pgx.TxIsoLevel {
	switch level {
	case driver.IsolationReadUncommitted:
		return pgx.ReadUncommitted
	case driver.IsolationReadCommitted:
		return pgx.ReadCommitted
	case driver.IsolationRepeatableRead:
		return pgx.RepeatableRead
	case driver.IsolationSerializable:
		return pgx.Serializable
	default:
		return "" // database default
	}
}
