package api

import (
	"time"

	"github.com/prism-ai/prism/pkg/provider"
)

// ErrorResponse is the body of every non-streaming error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Version   string          `json:"version"`
	Commit    string          `json:"commit"`
	Timestamp time.Time       `json:"timestamp"`
	Providers map[string]bool `json:"providers"`
}

// ProvidersResponse is returned by GET /api/settings/providers.
type ProvidersResponse struct {
	Active    string          `json:"active"`
	Providers []provider.Info `json:"providers"`
}

// SelectProviderResponse is returned by POST /api/settings/providers.
type SelectProviderResponse struct {
	Success bool   `json:"success"`
	Active  string `json:"active"`
}
