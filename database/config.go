package database

import (
	"github.com/unisql/unisql/edgesql"
	"github.com/unisql/unisql/mariadb"
	"github.com/unisql/unisql/postgres"
	"github.com/unisql/unisql/sqlite"
)

// Config selects a backend for the unified client. Use one of the helper
// functions (PostgresConfig, MariaDBConfig, SQLiteConfig, EdgeSQLConfig) to
// create it.
type Config struct {
	// Type is the backend type ("postgres", "mariadb", "sqlite" or
	// "edgesql").
	Type string

	// Postgres configuration (used when Type = "postgres")
	Postgres *postgres.Config

	// MariaDB configuration (used when Type = "mariadb")
	MariaDB *mariadb.Config

	// SQLite configuration (used when Type = "sqlite")
	SQLite *sqlite.Config

	// EdgeSQL configuration (used when Type = "edgesql")
	EdgeSQL *edgesql.Config
}

// PostgresConfig creates a database.Config for PostgreSQL.
func PostgresConfig(cfg postgres.Config) Config {
	return Config{Type: "postgres", Postgres: &cfg}
}

// MariaDBConfig creates a database.Config for MariaDB/MySQL.
func MariaDBConfig(cfg mariadb.Config) Config {
	return Config{Type: "mariadb", MariaDB: &cfg}
}

// SQLiteConfig creates a database.Config for embedded SQLite.
func SQLiteConfig(cfg sqlite.Config) Config {
	return Config{Type: "sqlite", SQLite: &cfg}
}

// EdgeSQLConfig creates a database.Config for a stateless SQL-over-HTTP
// backend.
func EdgeSQLConfig(cfg edgesql.Config) Config {
	return Config{Type: "edgesql", EdgeSQL: &cfg}
}
