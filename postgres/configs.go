package postgres

import (
	"fmt"
	"time"
)

type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"UNISQL_POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"UNISQL_POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"UNISQL_POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"UNISQL_POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"UNISQL_POSTGRES_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"UNISQL_POSTGRES_SSL_MODE"`
}

type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"UNISQL_POSTGRES_MAX_OPEN_CONNS"`
	MinIdleConns    int           `yaml:"min_idle_conns" envconfig:"UNISQL_POSTGRES_MIN_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"UNISQL_POSTGRES_CONN_MAX_LIFETIME"`
}

// DSN renders the keyword/value connection string pgx parses.
func (c Config) DSN() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}
