package mariadb

import "fmt"

type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"UNISQL_MARIADB_HOST"`
	Port     string `yaml:"port" envconfig:"UNISQL_MARIADB_PORT"`
	User     string `yaml:"user" envconfig:"UNISQL_MARIADB_USER"`
	Password string `yaml:"password" envconfig:"UNISQL_MARIADB_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"UNISQL_MARIADB_DB_NAME"`

	// Charset defaults to utf8mb4.
	Charset string `yaml:"charset" envconfig:"UNISQL_MARIADB_CHARSET"`

	// ParseTime makes the driver scan DATE/DATETIME into time.Time.
	ParseTime bool `yaml:"parse_time" envconfig:"UNISQL_MARIADB_PARSE_TIME"`

	// Loc is the time.Location name for ParseTime; defaults to Local.
	Loc string `yaml:"loc" envconfig:"UNISQL_MARIADB_LOC"`

	// TLS is the tls config name registered with the mysql driver
	// ("true", "skip-verify", or a custom name). Empty disables TLS.
	TLS string `yaml:"tls" envconfig:"UNISQL_MARIADB_TLS"`
}

type ConnectionDetails struct {
	MaxOpenConns int `yaml:"max_open_conns" envconfig:"UNISQL_MARIADB_MAX_OPEN_CONNS"`
	MaxIdleConns int `yaml:"max_idle_conns" envconfig:"UNISQL_MARIADB_MAX_IDLE_CONNS"`
}

// DSN renders the go-sql-driver data source name:
// username:password@tcp(host:port)/dbname?param=value
func (c Config) DSN() string {
	charset := c.Connection.Charset
	if charset == "" {
		charset = "utf8mb4"
	}

	parseTime := "True"
	if !c.Connection.ParseTime {
		parseTime = "False"
	}

	loc := c.Connection.Loc
	if loc == "" {
		loc = "Local"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=%s&loc=%s",
		c.Connection.User,
		c.Connection.Password,
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.DbName,
		charset,
		parseTime,
		loc,
	)

	if c.Connection.TLS != "" {
		dsn += "&tls=" + c.Connection.TLS
	}

	return dsn
}
