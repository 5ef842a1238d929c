// Package telemetry records stream metrics through OpenTelemetry. cmd/prism
// builds an SDK MeterProvider with NewMeterProvider; without one the global
// provider is used, which is a no-op unless the host installs its own.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/prism-ai/prism/pkg/telemetry"

// Stream outcomes recorded on prism.stream.finished.
const (
	OutcomeCompleted    = "completed"
	OutcomeErrored      = "errored"
	OutcomeDisconnected = "disconnected"
)

// Metrics holds the stream instruments.
type Metrics struct {
	started  metric.Int64Counter
	chunks   metric.Int64Counter
	finished metric.Int64Counter
	rejected metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates instruments on mp, or on the global MeterProvider when mp is nil.
// Instruments that fail to register are logged and left as no-ops.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	m := &Metrics{}
	var err error
	if m.started, err = meter.Int64Counter("prism.stream.started",
		metric.WithDescription("Stage streams opened")); err != nil {
		slog.Warn("Failed to create metric", "name", "prism.stream.started", "error", err)
	}
	if m.chunks, err = meter.Int64Counter("prism.stream.chunks",
		metric.WithDescription("Chunk frames written")); err != nil {
		slog.Warn("Failed to create metric", "name", "prism.stream.chunks", "error", err)
	}
	if m.finished, err = meter.Int64Counter("prism.stream.finished",
		metric.WithDescription("Stage streams closed, by outcome")); err != nil {
		slog.Warn("Failed to create metric", "name", "prism.stream.finished", "error", err)
	}
	if m.rejected, err = meter.Int64Counter("prism.request.rejected",
		metric.WithDescription("Stage requests rejected before streaming, by reason")); err != nil {
		slog.Warn("Failed to create metric", "name", "prism.request.rejected", "error", err)
	}
	if m.duration, err = meter.Float64Histogram("prism.stream.duration",
		metric.WithDescription("Stage stream wall-clock duration"),
		metric.WithUnit("s")); err != nil {
		slog.Warn("Failed to create metric", "name", "prism.stream.duration", "error", err)
	}
	return m
}

// StreamStarted counts a stream opened for stage.
func (m *Metrics) StreamStarted(ctx context.Context, stage string) {
	if m == nil || m.started == nil {
		return
	}
	m.started.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// ChunkSent counts one chunk frame written for stage.
func (m *Metrics) ChunkSent(ctx context.Context, stage string) {
	if m == nil || m.chunks == nil {
		return
	}
	m.chunks.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// StreamFinished records the outcome and duration of a stream.
func (m *Metrics) StreamFinished(ctx context.Context, stage, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("stage", stage), attribute.String("outcome", outcome))
	if m.finished != nil {
		m.finished.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, d.Seconds(), attrs)
	}
}

// RequestRejected counts a stage request refused before any stream opened.
func (m *Metrics) RequestRejected(ctx context.Context, stage, reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage), attribute.String("reason", reason)))
}
