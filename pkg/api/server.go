package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/prism-ai/prism/pkg/config"
	"github.com/prism-ai/prism/pkg/masking"
	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/telemetry"
)

// Server is the HTTP API: three streaming stage endpoints plus the
// read-only health and provider settings endpoints.
type Server struct {
	cfg        *config.Config
	registry   *provider.Registry
	metrics    *telemetry.Metrics
	limiter    *rate.Limiter // nil = unlimited
	masker     *masking.Service
	engine     *gin.Engine
	httpServer *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg *config.Config, registry *provider.Registry, metrics *telemetry.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		metrics:  metrics,
		masker:   masking.NewService(cfg.Providers),
		engine:   gin.New(),
	}

	if rl := cfg.Server.RateLimit; rl.Enabled() {
		s.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.Burst)
	}

	// No WriteTimeout: stage responses are long-lived streams.
	s.httpServer = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.Use(gin.Recovery(), requestID(), requestLogger(), securityHeaders())

	api := s.engine.Group("/api")
	api.GET("/health", s.healthHandler)

	stages := api.Group("", s.rateLimit())
	stages.POST("/research", s.researchHandler)
	stages.POST("/refine", s.refineHandler)
	stages.POST("/restyle", s.restyleHandler)

	settings := api.Group("/settings")
	settings.GET("/providers", s.listProvidersHandler)
	settings.POST("/providers", s.selectProviderHandler)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight streams
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
