// Package sqlite is the embedded SQLite adapter for the unisql driver layer,
// built on database/sql over mattn/go-sqlite3.
//
// Capability profile: transactions are supported, native batches are not, so
// ExecuteBatch degrades to the transactional tier. The pool is pinned to a
// single connection so :memory: databases keep their state across calls.
//
// SQLite has no native boolean or structured relation types; the package
// ships a result parser (NewParser) that coerces 0/1 integers on declared
// boolean fields to bool and decodes JSON-serialized relation text. Wire it
// with driver.WithResultParsers, or use the fx module which pre-wires it.
//
// Constraint failures are translated into the driver taxonomy, and
// SQLITE_BUSY / SQLITE_LOCKED ride on QueryError codes so they stay
// centrally classifiable as retryable.
//
//	db := driver.New(
//	    sqlite.NewAdapter(sqlite.Config{Path: "app.db"}),
//	    driver.WithResultParsers(sqlite.NewParser()),
//	)
package sqlite
