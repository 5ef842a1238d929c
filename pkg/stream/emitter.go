// Package stream turns a fixed block of text into a timed, cancellable
// sequence of small chunks, simulating token-by-token model output.
package stream

import (
	"context"
	"iter"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/prism-ai/prism/pkg/config"
)

// Emitter splits text into chunks of ChunkSize characters and pauses
// between them. An Emitter is safe for concurrent use; every call to Emit
// produces an independent sequence.
type Emitter struct {
	chunkSize int
	baseDelay time.Duration
	jitter    time.Duration

	mu  sync.Mutex
	rng *rand.Rand // nil = global source
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithChunkSize sets the number of characters per chunk. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(e *Emitter) {
		if n >= 1 {
			e.chunkSize = n
		}
	}
}

// WithDelay sets the per-chunk pause to base plus a random duration in [0, jitter).
func WithDelay(base, jitter time.Duration) Option {
	return func(e *Emitter) {
		e.baseDelay = max(base, 0)
		e.jitter = max(jitter, 0)
	}
}

// WithRand makes jitter deterministic.
func WithRand(r *rand.Rand) Option {
	return func(e *Emitter) {
		e.rng = r
	}
}

// NewEmitter returns an emitter with the default cadence: 3 characters per
// chunk, 25ms base delay, up to 15ms jitter.
func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		chunkSize: config.DefaultChunkSize,
		baseDelay: config.DefaultBaseDelay,
		jitter:    config.DefaultJitter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds an emitter from the streaming section of the configuration.
func FromConfig(cfg *config.StreamingConfig) *Emitter {
	return NewEmitter(
		WithChunkSize(cfg.ChunkSize),
		WithDelay(cfg.BaseDelay, cfg.Jitter),
	)
}

// ChunkSize returns the configured chunk size.
func (e *Emitter) ChunkSize() int {
	return e.chunkSize
}

// Emit returns a lazy, single-use sequence of chunks covering text exactly
// once and in order. The emitter pauses after every yielded chunk. The
// sequence ends early, without leaking timers, when the consumer stops
// iterating or ctx is cancelled. Ranging over it a second time yields nothing.
func (e *Emitter) Emit(ctx context.Context, text string) iter.Seq[string] {
	var used atomic.Bool
	return func(yield func(string) bool) {
		if !used.CompareAndSwap(false, true) {
			return
		}
		rest := text
		for rest != "" {
			if ctx.Err() != nil {
				return
			}
			var chunk string
			chunk, rest = cut(rest, e.chunkSize)
			if !yield(chunk) {
				return
			}
			if !sleep(ctx, e.delay()) {
				return
			}
		}
	}
}

func (e *Emitter) delay() time.Duration {
	if e.jitter <= 0 {
		return e.baseDelay
	}
	if e.rng == nil {
		return e.baseDelay + rand.N(e.jitter)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseDelay + time.Duration(e.rng.Int64N(int64(e.jitter)))
}

// Chunks splits text the same way Emit does, without any pauses.
func Chunks(text string, size int) []string {
	if size < 1 {
		size = 1
	}
	var out []string
	for text != "" {
		var chunk string
		chunk, text = cut(text, size)
		out = append(out, chunk)
	}
	return out
}

// cut returns the first n characters of s and the remainder. Characters are
// decoded as UTF-8 so multi-byte runes are never split; invalid bytes count
// as one character each and are passed through untouched.
func cut(s string, n int) (head, tail string) {
	i := 0
	for range n {
		if i >= len(s) {
			break
		}
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
	}
	return s[:i], s[i:]
}

// sleep waits for d or until ctx is done. It reports whether the wait completed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
