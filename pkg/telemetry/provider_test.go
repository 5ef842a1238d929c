package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism-ai/prism/pkg/config"
)

func TestNewMeterProvider(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		contains []string
	}{
		{
			name:     "log exporter",
			exporter: config.ExporterLog,
			contains: []string{"msg=Metric", "name=prism.stream.started", "value=2"},
		},
		{
			name:     "stdout exporter",
			exporter: config.ExporterStdout,
			contains: []string{`"prism.stream.started"`, `"prism-ai"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs, stdout bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			cfg := &config.TelemetryConfig{Exporter: tt.exporter, Interval: time.Hour}

			mp, err := NewMeterProvider(cfg, logger, &stdout)
			require.NoError(t, err)
			require.NotNil(t, mp)

			ctx := context.Background()
			m := NewMetrics(mp)
			m.StreamStarted(ctx, "research")
			m.StreamStarted(ctx, "research")
			require.NoError(t, mp.ForceFlush(ctx))
			require.NoError(t, mp.Shutdown(ctx))

			out := logs.String() + stdout.String()
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestNewMeterProviderNone(t *testing.T) {
	mp, err := NewMeterProvider(&config.TelemetryConfig{Exporter: config.ExporterNone}, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, mp)
}

func TestNewMeterProviderUnknownExporter(t *testing.T) {
	_, err := NewMeterProvider(&config.TelemetryConfig{Exporter: "statsd", Interval: time.Second}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd")
}
