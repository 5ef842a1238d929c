package telemetry

import (
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/prism-ai/prism/pkg/config"
	"github.com/prism-ai/prism/pkg/version"
)

// NewMeterProvider builds the SDK MeterProvider selected by cfg, exporting
// every cfg.Interval. It returns nil for the "none" exporter; NewMetrics then
// falls back to the global provider. stdout is used by the stdout exporter.
// The caller must Shutdown the provider to flush the final export.
func NewMeterProvider(cfg *config.TelemetryConfig, logger *slog.Logger, stdout io.Writer) (*sdkmetric.MeterProvider, error) {
	var exporter sdkmetric.Exporter
	switch cfg.Exporter {
	case config.ExporterNone:
		return nil, nil
	case config.ExporterLog:
		exporter = NewLogExporter(logger)
	case config.ExporterStdout:
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, fmt.Errorf("unknown metric exporter %q", cfg.Exporter)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", version.ServiceName),
		attribute.String("service.version", version.Version),
	)
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res)), nil
}
