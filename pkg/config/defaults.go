package config

import "time"

// Built-in defaults. prism.yaml values override them field by field.
const (
	DefaultHTTPPort        = "8080"
	DefaultChunkSize       = 3
	DefaultBaseDelay       = 25 * time.Millisecond
	DefaultJitter          = 15 * time.Millisecond
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsInterval = time.Minute
)

func builtinDefaults() *PrismYAMLConfig {
	return &PrismYAMLConfig{
		Server: ServerConfig{
			HTTPPort:        DefaultHTTPPort,
			LogLevel:        "info",
			LogFormat:       "text",
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Streaming: StreamingConfig{
			ChunkSize: DefaultChunkSize,
			BaseDelay: DefaultBaseDelay,
			Jitter:    DefaultJitter,
		},
		Providers: ProvidersConfig{
			OpenAI: OpenAIConfig{APIKeyEnv: "OPENAI_API_KEY", Model: "gpt-4o-mini"},
			Azure:  AzureConfig{EndpointEnv: "AZURE_AI_ENDPOINT", APIKeyEnv: "AZURE_AI_API_KEY"},
			Ollama: OllamaConfig{BaseURLEnv: "OLLAMA_API_URL", Model: "llama3"},
		},
		Telemetry: TelemetryConfig{
			Exporter: ExporterLog,
			Interval: DefaultMetricsInterval,
		},
	}
}
