package config

// Config is the umbrella configuration object returned by Initialize and
// passed to the server, the stage providers and the provider registry.
type Config struct {
	configDir string

	Server    *ServerConfig
	Streaming *StreamingConfig
	Providers *ProvidersConfig
	Telemetry *TelemetryConfig
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Default returns a Config populated purely from built-in defaults.
// Used by tests and by callers that run without a config directory.
func Default() *Config {
	d := builtinDefaults()
	return &Config{
		Server:    &d.Server,
		Streaming: &d.Streaming,
		Providers: &d.Providers,
		Telemetry: &d.Telemetry,
	}
}
