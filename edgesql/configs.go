package edgesql

import "time"

type Config struct {
	// Endpoint is the base URL of the SQL-over-HTTP service, e.g.
	// "https://edge.example.com/v1/query".
	Endpoint string `yaml:"endpoint" envconfig:"UNISQL_EDGESQL_ENDPOINT"`

	// APIKey is sent as a bearer token when set.
	APIKey string `yaml:"api_key" envconfig:"UNISQL_EDGESQL_API_KEY"`

	// Timeout bounds each HTTP round trip. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" envconfig:"UNISQL_EDGESQL_TIMEOUT"`
}
