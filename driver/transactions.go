package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Transaction runs fn inside a new top-level transaction. On a nil return
// the transaction commits; on an error it rolls back and the original error
// is re-raised. The Client handed to fn is bound to the transaction: every
// execute goes through the open handle, and nested Transaction calls nest
// via savepoints.
//
// Backends that cannot support transactions (stateless HTTP engines) fail
// fast with a *FeatureNotSupportedError rather than pretend to provide
// isolation.
func (d *Driver) Transaction(ctx context.Context, fn func(tx Client) error, opts ...TxOption) error {
	if !d.adapter.Capabilities().Transactions {
		return NewFeatureNotSupportedError(
			"transactions", "Transaction",
			"execute statements individually or use ExecuteBatch for best-effort grouping",
		)
	}

	options := resolveTxOptions(opts)

	if options.Isolation != IsolationDefault && !dialectSupportsIsolation(d.adapter.Dialect(), options.Isolation) {
		d.logger.Warn("isolation level is not supported by this backend; the backend default applies", nil, map[string]interface{}{
			"driver":    d.adapter.Name(),
			"dialect":   string(d.adapter.Dialect()),
			"isolation": string(options.Isolation),
		})
	}

	return d.observeErr(ctx, "transaction", func(ctx context.Context) error {
		conn, err := d.getClient(ctx)
		if err != nil {
			return err
		}

		if options.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, options.Timeout)
			defer cancel()
		}

		tx, err := conn.Begin(ctx, options)
		if err != nil {
			return NewTransactionError("failed to begin transaction", err)
		}

		d.txDepth.Add(1)
		committed := false
		defer func() {
			d.txDepth.Add(-1)
			if committed {
				return
			}
			// Roll back on error or panic so the driver is never left
			// stuck inside a transaction. The rollback context must
			// survive a body that timed out.
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
				d.logger.Error("transaction rollback failed", rbErr, map[string]interface{}{
					"driver": d.adapter.Name(),
				})
			}
		}()

		view := &txClient{driver: d, tx: tx, depth: 1}
		if err := fn(view); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return NewTransactionError("failed to commit transaction", err)
		}
		committed = true
		return nil
	})
}

// runSavepoint implements transaction nesting: instead of a new backend
// transaction it brackets fn between SAVEPOINT and RELEASE/ROLLBACK TO on
// the already-open handle. A failure at this depth rolls back only to this
// savepoint, leaving outer depths intact for their own callers to decide.
func (d *Driver) runSavepoint(ctx context.Context, tx Tx, depth int, fn func(tx Client) error, options TxOptions) error {
	if options.Isolation != IsolationDefault {
		d.logger.Warn("isolation level cannot change inside an open transaction; savepoint inherits the outer level", nil, map[string]interface{}{
			"driver":    d.adapter.Name(),
			"isolation": string(options.Isolation),
		})
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	name := d.nextSavepointName()

	return d.observeErr(ctx, "savepoint", func(ctx context.Context) error {
		if _, err := tx.Execute(ctx, "SAVEPOINT "+name, nil); err != nil {
			return NewTransactionError("failed to create savepoint "+name, err)
		}

		d.txDepth.Add(1)
		released := false
		defer func() {
			d.txDepth.Add(-1)
			if released {
				return
			}
			if _, rbErr := tx.Execute(context.WithoutCancel(ctx), "ROLLBACK TO SAVEPOINT "+name, nil); rbErr != nil {
				d.logger.Error("savepoint rollback failed", rbErr, map[string]interface{}{
					"driver":    d.adapter.Name(),
					"savepoint": name,
				})
			}
		}()

		view := &txClient{driver: d, tx: tx, depth: depth + 1}
		if err := fn(view); err != nil {
			return err
		}

		if _, err := tx.Execute(ctx, "RELEASE SAVEPOINT "+name, nil); err != nil {
			return NewTransactionError("failed to release savepoint "+name, err)
		}
		released = true
		return nil
	})
}

// dialectSupportsIsolation reports whether the dialect can honor the
// requested isolation level. SQLite runs serializable only.
func dialectSupportsIsolation(dialect Dialect, level IsolationLevel) bool {
	if dialect == DialectSQLite {
		return level == IsolationSerializable
	}
	return true
}

// nextSavepointName returns a savepoint identifier unique within the
// connection's lifetime: a per-driver monotonic counter plus a random
// suffix, so concurrent nested transactions from different call sites on
// the same connection never collide.
func (d *Driver) nextSavepointName() string {
	return fmt.Sprintf("unisql_sp_%d_%s", d.spCounter.Add(1), uuid.NewString()[:8])
}

// TxDepth reports the current transaction nesting depth. Observability
// only.
func (d *Driver) TxDepth() int {
	return int(d.txDepth.Load())
}
