package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestInitializeWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Initialize(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPPort, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultChunkSize, cfg.Streaming.ChunkSize)
	assert.Equal(t, DefaultBaseDelay, cfg.Streaming.BaseDelay)
	assert.Equal(t, DefaultJitter, cfg.Streaming.Jitter)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Providers.OpenAI.APIKeyEnv)
	assert.False(t, cfg.Server.RateLimit.Enabled())
}

func TestInitializeMergesOverDefaults(t *testing.T) {
	t.Setenv("PRISM_TEST_OLLAMA_VAR", "MY_OLLAMA_URL")

	dir := writeConfig(t, `
server:
  http_port: "9000"
  log_level: debug
  rate_limit:
    requests_per_second: 2.5
    burst: 5
streaming:
  chunk_size: 8
  base_delay: 5ms
providers:
  ollama:
    base_url_env: "{{.PRISM_TEST_OLLAMA_VAR}}"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ConfigDir())
	assert.Equal(t, "9000", cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "text", cfg.Server.LogFormat, "unset fields keep defaults")
	assert.Equal(t, 2.5, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Server.RateLimit.Burst)

	assert.Equal(t, 8, cfg.Streaming.ChunkSize)
	assert.Equal(t, 5*time.Millisecond, cfg.Streaming.BaseDelay)
	assert.Equal(t, DefaultJitter, cfg.Streaming.Jitter)

	assert.Equal(t, "MY_OLLAMA_URL", cfg.Providers.Ollama.BaseURLEnv)
	assert.Equal(t, "llama3", cfg.Providers.Ollama.Model)
	assert.Equal(t, "AZURE_AI_ENDPOINT", cfg.Providers.Azure.EndpointEnv)
}

func TestInitializeExplicitZeroCadence(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		baseDelay time.Duration
		jitter    time.Duration
	}{
		{
			name:      "both zero",
			yaml:      "streaming:\n  base_delay: 0s\n  jitter: 0s\n",
			baseDelay: 0,
			jitter:    0,
		},
		{
			name:      "zero jitter keeps default delay",
			yaml:      "streaming:\n  jitter: 0s\n",
			baseDelay: DefaultBaseDelay,
			jitter:    0,
		},
		{
			name:      "non-zero values still override",
			yaml:      "streaming:\n  base_delay: 1ms\n  jitter: 2ms\n",
			baseDelay: time.Millisecond,
			jitter:    2 * time.Millisecond,
		},
		{
			name:      "omitted keys keep defaults",
			yaml:      "server:\n  log_level: warn\n",
			baseDelay: DefaultBaseDelay,
			jitter:    DefaultJitter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Initialize(context.Background(), writeConfig(t, tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.baseDelay, cfg.Streaming.BaseDelay)
			assert.Equal(t, tt.jitter, cfg.Streaming.Jitter)
		})
	}
}

func TestInitializeEmptyFile(t *testing.T) {
	cfg, err := Initialize(context.Background(), writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, cfg.Streaming.ChunkSize)
}

func TestInitializeInvalidYAML(t *testing.T) {
	_, err := Initialize(context.Background(), writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidYAML))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, FileName, le.File)
}

func TestInitializeUnknownField(t *testing.T) {
	_, err := Initialize(context.Background(), writeConfig(t, "streaming:\n  chunk_sz: 4\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidYAML))
}

func TestInitializeValidationFailure(t *testing.T) {
	_, err := Initialize(context.Background(), writeConfig(t, "server:\n  log_format: xml\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, err.Error(), "log_format")
}

func TestProvidersConfigured(t *testing.T) {
	cfg := Default()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AZURE_AI_ENDPOINT", "")
	t.Setenv("AZURE_AI_API_KEY", "")
	t.Setenv("OLLAMA_API_URL", "")
	assert.False(t, cfg.Providers.OpenAI.Configured())
	assert.False(t, cfg.Providers.Azure.Configured())
	assert.False(t, cfg.Providers.Ollama.Configured())

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AZURE_AI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("OLLAMA_API_URL", "http://localhost:11434")
	assert.True(t, cfg.Providers.OpenAI.Configured())
	assert.False(t, cfg.Providers.Azure.Configured(), "azure needs both endpoint and key")
	assert.True(t, cfg.Providers.Ollama.Configured())

	t.Setenv("AZURE_AI_API_KEY", "key")
	assert.True(t, cfg.Providers.Azure.Configured())
}

func TestSlogLevel(t *testing.T) {
	cfg := Default()
	cfg.Server.LogLevel = "warn"
	assert.Equal(t, "WARN", cfg.Server.SlogLevel().String())

	cfg.Server.LogLevel = "nonsense"
	assert.Equal(t, "INFO", cfg.Server.SlogLevel().String())
}

func TestInitializeShippedConfig(t *testing.T) {
	cfg, err := Initialize(context.Background(), filepath.Join("..", "..", "deploy", "config"))
	require.NoError(t, err)

	assert.True(t, cfg.Server.RateLimit.Enabled())
	assert.Equal(t, 10, cfg.Server.RateLimit.Burst)
	assert.Equal(t, 25*time.Millisecond, cfg.Streaming.BaseDelay)
	assert.Equal(t, "llama3", cfg.Providers.Ollama.Model)
	assert.Equal(t, ExporterLog, cfg.Telemetry.Exporter)
	assert.Equal(t, time.Minute, cfg.Telemetry.Interval)
}
