package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Level selects the minimum level emitted. Unknown values fall back to
	// info.
	Level string `yaml:"level" envconfig:"UNISQL_LOGGER_LEVEL"`

	// ServiceName is attached to every log entry. Defaults to "unisql".
	ServiceName string `yaml:"service_name" envconfig:"UNISQL_SERVICE_NAME"`
}
