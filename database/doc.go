// Package database is the unified entry point for the unisql driver layer:
// one Config selects a backend (PostgreSQL, MariaDB/MySQL, SQLite or a
// stateless SQL-over-HTTP service) and NewClient returns a driver that
// behaves identically across all of them, modulo each backend's declared
// capabilities.
//
//	db, err := database.NewClient(database.PostgresConfig(postgres.Config{
//	    Connection: postgres.Connection{Host: "localhost", Port: "5432", ...},
//	}))
//	if err != nil { ... }
//	defer db.Disconnect(ctx)
//
//	res, err := db.Execute(ctx, driver.Statement{
//	    SQL:    "SELECT id, email FROM users WHERE active = ?",
//	    Params: []any{true},
//	})
//
// Applications that want dependency injection use FXModule and depend on the
// driver.Client interface.
package database
