package tracer

type Config struct {
	// ServiceName identifies the service emitting spans.
	ServiceName string `yaml:"service_name" envconfig:"UNISQL_TRACER_SERVICE_NAME"`

	// AppEnv tags spans with the deployment environment
	// (e.g. "production", "staging").
	AppEnv string `yaml:"app_env" envconfig:"UNISQL_TRACER_APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. When false, spans are
	// created but never exported, which is the right setting for tests.
	EnableExport bool `yaml:"enable_export" envconfig:"UNISQL_TRACER_ENABLE_EXPORT"`
}
