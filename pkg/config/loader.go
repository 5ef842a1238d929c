package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up inside the config directory.
const FileName = "prism.yaml"

// PrismYAMLConfig represents the complete prism.yaml file structure
type PrismYAMLConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Streaming StreamingConfig `yaml:"streaming"`
	Providers ProvidersConfig `yaml:"providers"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Read prism.yaml from configDir (a missing file means built-in defaults only)
//  2. Expand {{.ENV}} templates
//  3. Parse YAML, rejecting unknown keys
//  4. Merge the user values over the built-in defaults
//  5. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	log.Info("Configuration initialized successfully",
		"http_port", cfg.Server.HTTPPort,
		"chunk_size", cfg.Streaming.ChunkSize,
		"base_delay", cfg.Streaming.BaseDelay,
		"jitter", cfg.Streaming.Jitter,
		"rate_limit_rps", cfg.Server.RateLimit.RequestsPerSecond)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	merged := builtinDefaults()

	user, data, err := loadYAML(filepath.Join(configDir, FileName))
	switch {
	case errors.Is(err, ErrConfigNotFound):
		slog.Info("No configuration file found, using built-in defaults",
			"path", filepath.Join(configDir, FileName))
	case err != nil:
		return nil, NewLoadError(FileName, err)
	default:
		if err := mergo.Merge(merged, user, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge %s over defaults: %w", FileName, err)
		}
		if err := applyExplicitZeros(merged, data); err != nil {
			return nil, NewLoadError(FileName, err)
		}
	}

	return &Config{
		configDir: configDir,
		Server:    &merged.Server,
		Streaming: &merged.Streaming,
		Providers: &merged.Providers,
		Telemetry: &merged.Telemetry,
	}, nil
}

func loadYAML(path string) (*PrismYAMLConfig, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, nil, err
	}

	data = ExpandEnv(data)

	var parsed PrismYAMLConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &parsed, data, nil
}

// explicitCadence captures streaming durations only when the file sets them.
type explicitCadence struct {
	Streaming struct {
		BaseDelay *time.Duration `yaml:"base_delay"`
		Jitter    *time.Duration `yaml:"jitter"`
	} `yaml:"streaming"`
}

// applyExplicitZeros restores the streaming durations the file sets to 0.
// mergo.WithOverride never copies zero values, so "jitter: 0s" would
// otherwise keep the built-in jitter.
func applyExplicitZeros(merged *PrismYAMLConfig, data []byte) error {
	var explicit explicitCadence
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if d := explicit.Streaming.BaseDelay; d != nil && *d == 0 {
		merged.Streaming.BaseDelay = 0
	}
	if d := explicit.Streaming.Jitter; d != nil && *d == 0 {
		merged.Streaming.Jitter = 0
	}
	return nil
}
