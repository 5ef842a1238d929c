package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prism-ai/prism/pkg/version"
)

// healthHandler handles GET /api/health.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   version.ServiceName,
		Version:   version.Version,
		Commit:    version.GitCommit,
		Timestamp: time.Now().UTC(),
		Providers: s.registry.Flags(),
	})
}
