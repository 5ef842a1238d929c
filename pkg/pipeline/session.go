// Package pipeline orchestrates the three stages of one interactive
// session: it gates each stage on its predecessor, allows only one stream
// at a time and feeds each stage the previous stage's output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prism-ai/prism/pkg/client"
	"github.com/prism-ai/prism/pkg/provider"
)

var (
	// ErrStageRunning is returned when another stage is still streaming.
	ErrStageRunning = errors.New("a stage is already running")
	// ErrStageLocked is returned when the preceding stage is not done.
	ErrStageLocked = errors.New("previous stage is not complete")
)

// Streamer runs one stage against a backend. *client.Client implements it.
type Streamer interface {
	Stream(ctx context.Context, stage provider.Stage, body any, onUpdate client.UpdateFunc) (client.StageState, error)
}

// Inputs are the user-editable fields of the three stages.
type Inputs struct {
	Topic        string
	Instructions string
	Format       provider.OutputFormat
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Active   provider.Stage    `json:"active"`
	Research client.StageState `json:"research"`
	Refine   client.StageState `json:"refine"`
	Restyle  client.StageState `json:"restyle"`
}

// Stage returns the state of stage.
func (s Snapshot) Stage(stage provider.Stage) client.StageState {
	switch stage {
	case provider.StageResearch:
		return s.Research
	case provider.StageRefine:
		return s.Refine
	case provider.StageRestyle:
		return s.Restyle
	}
	return client.StageState{}
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers fn to receive a snapshot after every state change.
// fn is called without the session lock held and must not block for long.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) { s.observer = fn }
}

// Session holds the state of one pipeline run.
type Session struct {
	streamer Streamer
	observer func(Snapshot)
	logger   *slog.Logger

	mu     sync.Mutex
	states map[provider.Stage]client.StageState
	active provider.Stage
	cancel context.CancelFunc
	// generation is bumped by Run and Reset; updates from a stream whose
	// generation is stale are dropped.
	generation uint64
}

// NewSession creates a session with all stages idle and research selected.
func NewSession(streamer Streamer, opts ...Option) *Session {
	s := &Session{
		streamer: streamer,
		logger:   slog.Default(),
		states:   initialStates(),
		active:   provider.StageResearch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func initialStates() map[provider.Stage]client.StageState {
	states := make(map[provider.Stage]client.StageState, len(provider.Stages))
	for _, stage := range provider.Stages {
		states[stage] = client.InitialState()
	}
	return states
}

// Select makes stage the active (displayed) stage.
func (s *Session) Select(stage provider.Stage) error {
	if !stage.IsValid() {
		return fmt.Errorf("%w: %q", provider.ErrUnknownStage, stage)
	}

	s.mu.Lock()
	if !s.unlockedLocked(stage) {
		s.mu.Unlock()
		return ErrStageLocked
	}
	s.active = stage
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// CanRun reports whether Run(stage) would start a stream now.
func (s *Session) CanRun(stage provider.Stage) bool {
	if !stage.IsValid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.runningLocked() && s.unlockedLocked(stage)
}

// Run streams stage and blocks until it finishes. The request is built
// from in and the previous stage's content.
//
// An aborted stream (Cancel, Reset or ctx) leaves the stage idle with the
// content received so far and returns nil. A validation rejection restores
// the stage to its prior state and returns the *client.HTTPError. Any other
// failure leaves the stage idle and returns the wrapped error.
func (s *Session) Run(ctx context.Context, stage provider.Stage, in Inputs) error {
	if !stage.IsValid() {
		return fmt.Errorf("%w: %q", provider.ErrUnknownStage, stage)
	}

	s.mu.Lock()
	if s.runningLocked() {
		s.mu.Unlock()
		return ErrStageRunning
	}
	if !s.unlockedLocked(stage) {
		s.mu.Unlock()
		return ErrStageLocked
	}
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancel = cancel
	s.generation++
	gen := s.generation
	prior := s.states[stage]
	body := s.requestLocked(stage, in)
	s.states[stage] = client.StageState{Status: client.StatusRunning}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	s.logger.Info("Stage started", "stage", stage)

	state, err := s.streamer.Stream(runCtx, stage, body, func(st client.StageState) {
		s.apply(gen, stage, st)
	})

	s.mu.Lock()
	if s.generation != gen {
		// Reset while streaming; the reset state wins.
		s.mu.Unlock()
		return nil
	}
	s.cancel = nil
	switch {
	case client.IsValidationError(err):
		s.states[stage] = prior
	case err != nil:
		state.Status = client.StatusIdle
		s.states[stage] = state
	default:
		s.states[stage] = state
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	switch {
	case err == nil:
		s.logger.Info("Stage completed", "stage", stage, "tokens", state.TokenCount, "duration_ms", state.DurationMs)
		return nil
	case client.IsValidationError(err):
		return err
	case runCtx.Err() != nil:
		s.logger.Info("Stage aborted", "stage", stage, "chars", len(state.Content))
		return nil
	default:
		s.logger.Warn("Stage failed", "stage", stage, "error", err)
		return fmt.Errorf("run %s: %w", stage, err)
	}
}

func (s *Session) apply(gen uint64, stage provider.Stage, st client.StageState) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.states[stage] = st
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Cancel aborts the in-flight stream, if any. It reports whether one was running.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// Reset aborts any in-flight stream, returns every stage to idle and
// selects research.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.states = initialStates()
	s.active = provider.StageResearch
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Output returns the most refined content available: restyle, then
// refine, then research.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stage := range []provider.Stage{provider.StageRestyle, provider.StageRefine, provider.StageResearch} {
		if c := s.states[stage].Content; c != "" {
			return c
		}
	}
	return ""
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Active:   s.active,
		Research: s.states[provider.StageResearch],
		Refine:   s.states[provider.StageRefine],
		Restyle:  s.states[provider.StageRestyle],
	}
}

func (s *Session) runningLocked() bool {
	for _, st := range s.states {
		if st.IsRunning() {
			return true
		}
	}
	return false
}

func (s *Session) unlockedLocked(stage provider.Stage) bool {
	prev, ok := stage.Previous()
	return !ok || s.states[prev].IsDone()
}

func (s *Session) requestLocked(stage provider.Stage, in Inputs) any {
	switch stage {
	case provider.StageRefine:
		return client.RefineRequest{
			Content:      s.states[provider.StageResearch].Content,
			Instructions: in.Instructions,
		}
	case provider.StageRestyle:
		return client.RestyleRequest{
			Content: s.states[provider.StageRefine].Content,
			Format:  string(in.Format),
		}
	default:
		return client.ResearchRequest{Topic: in.Topic}
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.observer != nil {
		s.observer(snap)
	}
}
