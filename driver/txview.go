package driver

import (
	"context"
)

// txClient presents the full Client contract pinned to an open transaction
// handle. It holds a non-owning reference to the parent driver: it never
// closes or reinitializes the connection, and Disconnect on it is a no-op.
// Application code written against "a Client" transparently becomes
// transaction-scoped inside a Transaction callback.
type txClient struct {
	driver *Driver
	tx     Tx
	depth  int
}

var _ Client = (*txClient)(nil)

func (c *txClient) Name() string               { return c.driver.Name() }
func (c *txClient) Dialect() Dialect           { return c.driver.Dialect() }
func (c *txClient) Capabilities() Capabilities { return c.driver.Capabilities() }

// Connect is a no-op: the bound transaction already has a live connection.
func (c *txClient) Connect(ctx context.Context) error { return nil }

// Disconnect is a no-op: the parent driver owns the connection. A warning
// is logged because calling it here usually signals a caller holding the
// view beyond its transaction.
func (c *txClient) Disconnect(ctx context.Context) error {
	c.driver.logger.Warn("disconnect called on a transaction-bound client; ignored", nil, map[string]interface{}{
		"driver": c.driver.Name(),
		"depth":  c.depth,
	})
	return nil
}

// Execute renders stmt for the dialect and runs it on the bound transaction
// handle instead of triggering lazy initialization.
func (c *txClient) Execute(ctx context.Context, stmt Statement) (*Result, error) {
	sqlText := Render(stmt.SQL, c.driver.Dialect())
	return c.driver.observe(ctx, "execute", sqlText, len(stmt.Params), func(ctx context.Context) (*Result, error) {
		res, err := c.tx.Execute(ctx, sqlText, stmt.Params)
		if err != nil {
			return nil, err
		}
		_, operation := OperationFromContext(ctx)
		return c.driver.parsers.parse(operation, stmt.Fields, res), nil
	})
}

// ExecuteRaw runs SQL verbatim on the bound transaction handle.
func (c *txClient) ExecuteRaw(ctx context.Context, sql string, params ...any) (*Result, error) {
	return c.driver.observe(ctx, "executeRaw", sql, len(params), func(ctx context.Context) (*Result, error) {
		res, err := c.tx.Execute(ctx, sql, params)
		if err != nil {
			return nil, err
		}
		_, operation := OperationFromContext(ctx)
		return c.driver.parsers.parse(operation, nil, res), nil
	})
}

// ExecuteBatch executes the queries sequentially on the bound handle. The
// backend serializes statements on one transaction, so a native batch or a
// fresh wrapping transaction is neither possible nor needed: the surrounding
// transaction already decides atomicity. A failure stops the batch and
// propagates, leaving the rollback decision to the transaction owner.
func (c *txClient) ExecuteBatch(ctx context.Context, queries []BatchQuery) ([]*Result, error) {
	if len(queries) == 0 {
		return []*Result{}, nil
	}

	results := make([]*Result, 0, len(queries))
	for _, q := range queries {
		res, err := c.ExecuteRaw(ctx, Render(q.SQL, c.driver.Dialect()), q.Params...)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Transaction nests via the parent's savepoint controller, so arbitrary
// depth works transparently to calling code.
func (c *txClient) Transaction(ctx context.Context, fn func(tx Client) error, opts ...TxOption) error {
	return c.driver.runSavepoint(ctx, c.tx, c.depth, fn, resolveTxOptions(opts))
}
