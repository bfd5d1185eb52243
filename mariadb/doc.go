// Package mariadb is the MariaDB/MySQL adapter for the unisql driver layer,
// built on GORM over the go-sql-driver connection pool.
//
// Capability profile: transactions are supported, native batches are not, so
// ExecuteBatch degrades to the transactional tier and runs every statement
// inside one wrapping transaction with full rollback on failure.
//
// Placeholders stay in ? form, so statements pass through the renderer
// unchanged. Server errors are translated into the driver taxonomy: error
// 1062 becomes UniqueConstraintError (with the key name parsed from the
// server message), 1452/1451 become ForeignKeyError, and all other numbers
// ride on QueryError so deadlocks (1213) and lock wait timeouts (1205) stay
// centrally classifiable as retryable.
//
//	db := driver.New(mariadb.NewAdapter(mariadb.Config{
//	    Connection: mariadb.Connection{
//	        Host: "localhost", Port: "3306",
//	        User: "app", Password: "secret", DbName: "app",
//	    },
//	}))
package mariadb
