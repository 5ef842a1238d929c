package config

import "time"

// Metric exporters accepted in telemetry.exporter.
const (
	ExporterLog    = "log"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// TelemetryConfig selects where stream metrics are exported.
type TelemetryConfig struct {
	// Exporter is "log" (slog records), "stdout" (OTLP-style JSON on stdout)
	// or "none" (instruments stay no-ops).
	Exporter string `yaml:"exporter"`

	// Interval is the period between exports.
	Interval time.Duration `yaml:"interval"`
}
