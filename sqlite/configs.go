package sqlite

import "strconv"

type Config struct {
	// Path is the database file path, or ":memory:" for an in-process
	// database.
	Path string `yaml:"path" envconfig:"UNISQL_SQLITE_PATH"`

	// BusyTimeoutMs sets the busy handler timeout. Defaults to 5000.
	BusyTimeoutMs int `yaml:"busy_timeout_ms" envconfig:"UNISQL_SQLITE_BUSY_TIMEOUT_MS"`

	// ForeignKeys enables foreign key enforcement, which SQLite leaves off
	// per connection unless asked.
	ForeignKeys bool `yaml:"foreign_keys" envconfig:"UNISQL_SQLITE_FOREIGN_KEYS"`
}

// DSN renders the mattn/go-sqlite3 data source name with pragma parameters.
func (c Config) DSN() string {
	busy := c.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}

	dsn := c.Path + "?_busy_timeout=" + strconv.Itoa(busy)
	if c.ForeignKeys {
		dsn += "&_foreign_keys=on"
	}
	return dsn
}
