package config

import "time"

// StreamingConfig controls the cadence of the scripted chunk emitter.
// The emitter sleeps BaseDelay plus a random jitter in [0, Jitter) after
// every chunk of ChunkSize characters.
type StreamingConfig struct {
	ChunkSize int           `yaml:"chunk_size"`
	BaseDelay time.Duration `yaml:"base_delay"`
	Jitter    time.Duration `yaml:"jitter"`
}
