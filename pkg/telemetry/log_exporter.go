package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// LogExporter writes each collected data point as one slog record.
type LogExporter struct {
	logger *slog.Logger
}

var _ sdkmetric.Exporter = (*LogExporter)(nil)

// NewLogExporter returns an exporter logging through logger, or slog.Default when nil.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) Temporality(k sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(k)
}

func (e *LogExporter) Aggregation(k sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(k)
}

// Export logs counters with their value and histograms with count and sum.
func (e *LogExporter) Export(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					e.logger.LogAttrs(ctx, slog.LevelInfo, "Metric",
						slog.String("name", m.Name),
						slog.String("attributes", encode(dp.Attributes)),
						slog.Int64("value", dp.Value))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					e.logger.LogAttrs(ctx, slog.LevelInfo, "Metric",
						slog.String("name", m.Name),
						slog.String("attributes", encode(dp.Attributes)),
						slog.Uint64("count", dp.Count),
						slog.Float64("sum", dp.Sum))
				}
			default:
				e.logger.Debug("Skipping metric with unsupported aggregation", "name", m.Name)
			}
		}
	}
	return nil
}

func (e *LogExporter) ForceFlush(context.Context) error { return nil }

func (e *LogExporter) Shutdown(context.Context) error { return nil }

func encode(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}
