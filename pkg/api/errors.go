package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-ai/prism/pkg/provider"
)

// Client-facing validation messages.
const (
	msgTopicRequired    = "Topic is required"
	msgContentRequired  = "Content is required"
	msgProviderRequired = "Provider is required"
	msgTooManyRequests  = "Too many requests"
)

// abortWithError writes a JSON error body and stops the handler chain.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// mapProviderError maps registry errors to HTTP status and message.
func mapProviderError(err error) (int, string) {
	if errors.Is(err, provider.ErrProviderNotFound) {
		return http.StatusNotFound, "Provider not found"
	}
	slog.Error("Unexpected provider error", "error", err)
	return http.StatusInternalServerError, "Internal server error"
}
