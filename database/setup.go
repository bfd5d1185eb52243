package database

import (
	"fmt"

	"github.com/unisql/unisql/driver"
	"github.com/unisql/unisql/edgesql"
	"github.com/unisql/unisql/mariadb"
	"github.com/unisql/unisql/postgres"
	"github.com/unisql/unisql/sqlite"
)

// NewClient builds a driver for the backend selected by Config.Type. Options
// apply to every backend; the SQLite result parser is pre-wired for the
// sqlite type. The connection is created lazily on first use.
func NewClient(cfg Config, opts ...driver.Option) (*driver.Driver, error) {
	switch cfg.Type {
	case "postgres":
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres config is required when type=postgres")
		}
		return driver.New(postgres.NewAdapter(*cfg.Postgres), opts...), nil

	case "mariadb":
		if cfg.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=mariadb")
		}
		return driver.New(mariadb.NewAdapter(*cfg.MariaDB), opts...), nil

	case "sqlite":
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("sqlite config is required when type=sqlite")
		}
		opts = append([]driver.Option{driver.WithResultParsers(sqlite.NewParser())}, opts...)
		return driver.New(sqlite.NewAdapter(*cfg.SQLite), opts...), nil

	case "edgesql":
		if cfg.EdgeSQL == nil {
			return nil, fmt.Errorf("edgesql config is required when type=edgesql")
		}
		return driver.New(edgesql.NewAdapter(*cfg.EdgeSQL), opts...), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s (must be 'postgres', 'mariadb', 'sqlite' or 'edgesql')", cfg.Type)
	}
}
