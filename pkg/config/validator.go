package config

import (
	"fmt"
	"log/slog"
	"strconv"
)

// ConfigValidator validates configuration with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs validation (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateServer(); err != nil {
		return err
	}
	if err := v.validateStreaming(); err != nil {
		return err
	}
	if err := v.validateProviders(); err != nil {
		return err
	}
	return v.validateTelemetry()
}

func (v *ConfigValidator) validateServer() error {
	s := v.cfg.Server
	if s == nil {
		return NewValidationError("server", "", ErrMissingRequiredField)
	}

	port, err := strconv.Atoi(s.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		return NewValidationError("server", "http_port", fmt.Errorf("%w: %q", ErrInvalidValue, s.HTTPPort))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return NewValidationError("server", "log_level", fmt.Errorf("%w: %q", ErrInvalidValue, s.LogLevel))
	}

	if s.LogFormat != "text" && s.LogFormat != "json" {
		return NewValidationError("server", "log_format", fmt.Errorf("%w: must be text or json, got %q", ErrInvalidValue, s.LogFormat))
	}

	if s.ShutdownTimeout < 0 {
		return NewValidationError("server", "shutdown_timeout", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}

	rl := s.RateLimit
	if rl.RequestsPerSecond < 0 {
		return NewValidationError("server", "rate_limit.requests_per_second", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	if rl.Enabled() && rl.Burst < 1 {
		return NewValidationError("server", "rate_limit.burst", fmt.Errorf("%w: must be at least 1 when rate limiting is enabled", ErrInvalidValue))
	}

	return nil
}

func (v *ConfigValidator) validateStreaming() error {
	s := v.cfg.Streaming
	if s == nil {
		return NewValidationError("streaming", "", ErrMissingRequiredField)
	}
	if s.ChunkSize < 1 {
		return NewValidationError("streaming", "chunk_size", fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidValue, s.ChunkSize))
	}
	if s.BaseDelay < 0 {
		return NewValidationError("streaming", "base_delay", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	if s.Jitter < 0 {
		return NewValidationError("streaming", "jitter", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateProviders() error {
	p := v.cfg.Providers
	if p == nil {
		return NewValidationError("providers", "", ErrMissingRequiredField)
	}
	if p.OpenAI.APIKeyEnv == "" {
		return NewValidationError("providers", "openai.api_key_env", ErrMissingRequiredField)
	}
	if p.Azure.EndpointEnv == "" {
		return NewValidationError("providers", "azure.endpoint_env", ErrMissingRequiredField)
	}
	if p.Azure.APIKeyEnv == "" {
		return NewValidationError("providers", "azure.api_key_env", ErrMissingRequiredField)
	}
	if p.Ollama.BaseURLEnv == "" {
		return NewValidationError("providers", "ollama.base_url_env", ErrMissingRequiredField)
	}
	return nil
}

func (v *ConfigValidator) validateTelemetry() error {
	t := v.cfg.Telemetry
	if t == nil {
		return NewValidationError("telemetry", "", ErrMissingRequiredField)
	}
	switch t.Exporter {
	case ExporterLog, ExporterStdout, ExporterNone:
	default:
		return NewValidationError("telemetry", "exporter", fmt.Errorf("%w: must be log, stdout or none, got %q", ErrInvalidValue, t.Exporter))
	}
	if t.Exporter != ExporterNone && t.Interval <= 0 {
		return NewValidationError("telemetry", "interval", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}
