// Package provider defines the backend contract for the three pipeline
// stages. Any backend, scripted or real, streams text chunks followed by a
// single terminal result. Callers pick the concrete implementation once, at
// composition time, through Registry.
package provider

import (
	"context"
	"fmt"
)

// Provider is the capability contract every backend implements.
//
// Each operation returns a channel of events. The channel carries zero or
// more *ChunkEvent values followed by exactly one *ResultEvent, or by one
// *ErrorEvent on failure, and is then closed. When ctx is cancelled the
// operation stops promptly and closes the channel without a result.
// Consumers that stop reading early must cancel ctx.
type Provider interface {
	ID() string
	Name() string
	IsDemo() bool

	Research(ctx context.Context, topic string) (<-chan Event, error)
	Refine(ctx context.Context, content, instructions string) (<-chan Event, error)
	Restyle(ctx context.Context, content string, format OutputFormat) (<-chan Event, error)
}

// Stage identifies one of the three pipeline operations.
type Stage string

const (
	StageResearch Stage = "research"
	StageRefine   Stage = "refine"
	StageRestyle  Stage = "restyle"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{StageResearch, StageRefine, StageRestyle}

// IsValid checks if the stage is one of the three pipeline stages
func (s Stage) IsValid() bool {
	switch s {
	case StageResearch, StageRefine, StageRestyle:
		return true
	default:
		return false
	}
}

// Index returns the zero-based position of s in the pipeline, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Previous returns the stage that must complete before s may run.
func (s Stage) Previous() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return "", false
	}
	return Stages[i-1], true
}

// Next returns the stage unlocked by completing s.
func (s Stage) Next() (Stage, bool) {
	i := s.Index()
	if i < 0 || i == len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

// Label is the human readable stage name.
func (s Stage) Label() string {
	switch s {
	case StageResearch:
		return "Research"
	case StageRefine:
		return "Refine"
	case StageRestyle:
		return "Restyle"
	default:
		return string(s)
	}
}

// FailureMessage is the client-facing message sent in a stream error frame.
func (s Stage) FailureMessage() string {
	switch s {
	case StageRefine:
		return "Refinement failed"
	default:
		return fmt.Sprintf("%s failed", s.Label())
	}
}
