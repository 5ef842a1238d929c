package config

import (
	"log/slog"
	"time"
)

// ServerConfig holds HTTP listener and logging settings.
type ServerConfig struct {
	// HTTPPort is the listen port (HTTP_PORT env overrides it in cmd/prism).
	HTTPPort string `yaml:"http_port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`

	// ShutdownTimeout bounds graceful shutdown of in-flight streams.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RateLimit throttles the three stage endpoints. Zero RequestsPerSecond disables it.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures the token bucket shared by the stage endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Enabled reports whether stage requests are throttled.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// SlogLevel parses LogLevel. Unknown values fall back to info; the
// validator rejects them before this is reached in normal startup.
func (s *ServerConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
