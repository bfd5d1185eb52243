// Package postgres is the PostgreSQL adapter for the unisql driver layer,
// built on the pgx v5 connection pool.
//
// Capability profile: transactions and native batches are both supported,
// so this backend never degrades. The native batch pipelines every
// statement in a single round trip inside one transaction, making
// ExecuteBatch all-or-nothing.
//
// Each top-level transaction acquires its own pooled connection and releases
// it on commit or rollback; savepoint nesting happens on that one
// connection. Server errors are translated into the driver taxonomy:
// SQLSTATE 23505 becomes UniqueConstraintError (with constraint, table and
// best-effort column names), 23503 becomes ForeignKeyError, and all other
// codes ride on QueryError so serialization failures (40001) and deadlocks
// (40P01) stay centrally classifiable as retryable.
//
//	db := driver.New(postgres.NewAdapter(postgres.Config{
//	    Connection: postgres.Connection{
//	        Host: "localhost", Port: "5432",
//	        User: "app", Password: "secret", DbName: "app",
//	    },
//	}))
package postgres
