package database

import (
	"testing"

	"github.com/unisql/unisql/driver"
	"github.com/unisql/unisql/edgesql"
	"github.com/unisql/unisql/mariadb"
	"github.com/unisql/unisql/postgres"
	"github.com/unisql/unisql/sqlite"
)

func TestNewClientSelectsBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		dialect driver.Dialect
		caps    driver.Capabilities
	}{
		{
			name:    "postgres",
			cfg:     PostgresConfig(postgres.Config{}),
			dialect: driver.DialectPostgres,
			caps:    driver.Capabilities{Transactions: true, Batch: true},
		},
		{
			name:    "mariadb",
			cfg:     MariaDBConfig(mariadb.Config{}),
			dialect: driver.DialectMySQL,
			caps:    driver.Capabilities{Transactions: true},
		},
		{
			name:    "sqlite",
			cfg:     SQLiteConfig(sqlite.Config{Path: ":memory:"}),
			dialect: driver.DialectSQLite,
			caps:    driver.Capabilities{Transactions: true},
		},
		{
			name:    "edgesql",
			cfg:     EdgeSQLConfig(edgesql.Config{Endpoint: "http://localhost:1"}),
			dialect: driver.DialectPostgres,
			caps:    driver.Capabilities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewClient(tt.cfg)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if d.Dialect() != tt.dialect {
				t.Errorf("Dialect = %s, want %s", d.Dialect(), tt.dialect)
			}
			if d.Capabilities() != tt.caps {
				t.Errorf("Capabilities = %+v, want %+v", d.Capabilities(), tt.caps)
			}
		})
	}
}

func TestNewClientRejectsBadConfigs(t *testing.T) {
	if _, err := NewClient(Config{Type: "oracle"}); err == nil {
		t.Error("expected an error for an unsupported type")
	}
	if _, err := NewClient(Config{Type: "postgres"}); err == nil {
		t.Error("expected an error when the backend config is missing")
	}
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected an error for an empty config")
	}
}
