package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStage is returned when a stage name is not part of the pipeline.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrIncompleteStream is returned when a stream closes without a terminal event.
	ErrIncompleteStream = errors.New("stream ended without a result")

	// ErrProviderNotFound is returned by Registry lookups for unknown IDs.
	ErrProviderNotFound = errors.New("provider not found")
)

// ProviderError is a failure reported by a backend.
type ProviderError struct {
	Provider string
	Code     string // optional machine-readable code
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
	if e.Code != "" {
		msg = fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Code, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}
