package config

type TelemetryConfig interface {
	GetOTLPEndpoint() string
	GetOTLPInsecure() bool
}

// TelemetrySettings uses the standard OpenTelemetry variable names. Tracing is off when
// no endpoint is set.
type TelemetrySettings struct {
	Endpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure bool   `yaml:"otlp_insecure" env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"false"`
}

func (c mainConfig) GetOTLPEndpoint() string {
	return c.settings.Telemetry.Endpoint
}

func (c mainConfig) GetOTLPInsecure() bool {
	return c.settings.Telemetry.Insecure
}
