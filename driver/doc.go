// Package driver implements the unified SQL driver layer of unisql: one
// operation contract over structurally different backends: pooled TCP
// engines (Postgres, MySQL/MariaDB), embedded engines (SQLite) and
// stateless HTTP serverless engines.
//
// # Architecture
//
// Each backend plugs in through the Adapter interface, declaring a dialect
// and two capability flags (transactions, native batch) alongside its
// connection primitive. The Driver layers the shared machinery on top:
//
//   - Lazy client manager: the first call needing a live connection
//     initializes the backend client exactly once, no matter how many
//     callers race; Disconnect cancels cleanly and leaves the driver
//     reusable.
//   - Statement builder: renders the neutral `?` placeholder syntax into
//     the dialect's own ($1 for Postgres), memoized per fragment.
//   - Transaction controller: real transactions at depth 0, uniquely named
//     savepoints at depth > 0, automatic rollback on error.
//   - Batch executor: native atomic batch, transaction-wrapped fallback, or
//     best-effort sequential execution with an explicit warning, in that
//     order of preference.
//   - Result-parser middleware: an optional ordered chain normalizing
//     backend-specific result shapes (0/1 booleans, JSON-text relations).
//   - Instrumentation: tracing spans, structured query logs and operation
//     metrics around every call, with zero effect on results.
//
// Consumers program against the Client interface. Inside a Transaction
// callback they receive a transaction-bound Client with identical shape, so
// repository code does not know whether it runs inside a transaction.
//
// # Usage
//
//	db := driver.New(postgres.NewAdapter(cfg),
//	    driver.WithLogger(log),
//	    driver.WithTracer(tc),
//	)
//
//	res, err := db.Execute(ctx, driver.Statement{
//	    SQL:    "SELECT id, name FROM users WHERE id = ?",
//	    Params: []any{42},
//	})
//
//	err = db.Transaction(ctx, func(tx driver.Client) error {
//	    if _, err := tx.ExecuteRaw(ctx, "UPDATE accounts SET balance = balance - $1 WHERE id = $2", 100, from); err != nil {
//	        return err
//	    }
//	    _, err := tx.ExecuteRaw(ctx, "UPDATE accounts SET balance = balance + $1 WHERE id = $2", 100, to)
//	    return err
//	}, driver.WithIsolation(driver.IsolationSerializable))
//
// # Errors
//
// Every error surfaced by this package is part of the typed taxonomy in
// errors.go; backend-native errors are translated at the adapter boundary.
// Retry-eligibility is a property of the backend error code, not the error
// class: use IsRetryable or the Retry helper.
package driver
