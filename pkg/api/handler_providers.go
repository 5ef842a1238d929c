package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// listProvidersHandler handles GET /api/settings/providers.
func (s *Server) listProvidersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ProvidersResponse{
		Active:    s.registry.Active().ID(),
		Providers: s.registry.List(),
	})
}

// selectProviderHandler handles POST /api/settings/providers.
// The selection is acknowledged but not persisted; the active provider
// is fixed at startup.
func (s *Server) selectProviderHandler(c *gin.Context) {
	var req SelectProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProviderID) == "" {
		abortWithError(c, http.StatusBadRequest, msgProviderRequired)
		return
	}

	info, err := s.registry.Get(strings.TrimSpace(req.ProviderID))
	if err != nil {
		status, msg := mapProviderError(err)
		abortWithError(c, status, msg)
		return
	}

	loggerFor(c).Info("Provider selection acknowledged", "provider", info.ID, "configured", info.Configured)
	c.JSON(http.StatusOK, SelectProviderResponse{Success: true, Active: info.ID})
}
