package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newManualMetrics() (*Metrics, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func find(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := find(rm, name)
	if !ok {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestMetricsRecordCounters(t *testing.T) {
	ctx := context.Background()
	m, reader := newManualMetrics()

	m.StreamStarted(ctx, "research")
	for range 3 {
		m.ChunkSent(ctx, "research")
	}
	m.StreamFinished(ctx, "research", OutcomeCompleted, 150*time.Millisecond)
	m.StreamStarted(ctx, "refine")
	m.StreamFinished(ctx, "refine", OutcomeDisconnected, time.Second)
	m.RequestRejected(ctx, "restyle", "validation")

	rm := collect(t, reader)
	research := attribute.String("stage", "research")

	assert.EqualValues(t, 1, counterValue(t, rm, "prism.stream.started", research))
	assert.EqualValues(t, 1, counterValue(t, rm, "prism.stream.started", attribute.String("stage", "refine")))
	assert.EqualValues(t, 3, counterValue(t, rm, "prism.stream.chunks", research))
	assert.EqualValues(t, 1, counterValue(t, rm, "prism.stream.finished", research, attribute.String("outcome", OutcomeCompleted)))
	assert.EqualValues(t, 1, counterValue(t, rm, "prism.stream.finished",
		attribute.String("stage", "refine"), attribute.String("outcome", OutcomeDisconnected)))
	assert.EqualValues(t, 1, counterValue(t, rm, "prism.request.rejected",
		attribute.String("stage", "restyle"), attribute.String("reason", "validation")))
}

func TestMetricsRecordDuration(t *testing.T) {
	m, reader := newManualMetrics()

	m.StreamFinished(context.Background(), "restyle", OutcomeErrored, 1500*time.Millisecond)

	got, ok := find(collect(t, reader), "prism.stream.duration")
	require.True(t, ok)
	hist, ok := got.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.EqualValues(t, 1, hist.DataPoints[0].Count)
	assert.InDelta(t, 1.5, hist.DataPoints[0].Sum, 1e-9)
	assert.Equal(t, "s", got.Unit)
}

func TestMetricsRecordWithoutPanicking(t *testing.T) {
	ctx := context.Background()

	for name, m := range map[string]*Metrics{
		"noop provider":   NewMetrics(noop.NewMeterProvider()),
		"global provider": NewMetrics(nil),
		"nil metrics":     nil,
		"zero value":      {},
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				m.StreamStarted(ctx, "research")
				m.ChunkSent(ctx, "research")
				m.StreamFinished(ctx, "research", OutcomeCompleted, 150*time.Millisecond)
				m.RequestRejected(ctx, "research", "validation")
			})
		})
	}
}
