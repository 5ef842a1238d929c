package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/telemetry"
)

// openFunc starts the provider stream for one stage request.
type openFunc func(ctx context.Context) (<-chan provider.Event, error)

// researchHandler handles POST /api/research.
func (s *Server) researchHandler(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Topic) == "" {
		s.rejectStage(c, provider.StageResearch, msgTopicRequired)
		return
	}
	topic := strings.TrimSpace(req.Topic)

	s.streamStage(c, provider.StageResearch, func(ctx context.Context) (<-chan provider.Event, error) {
		return s.registry.Active().Research(ctx, topic)
	})
}

// refineHandler handles POST /api/refine.
func (s *Server) refineHandler(c *gin.Context) {
	var req RefineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.rejectStage(c, provider.StageRefine, msgContentRequired)
		return
	}
	instructions := optionalString(req.Instructions)

	s.streamStage(c, provider.StageRefine, func(ctx context.Context) (<-chan provider.Event, error) {
		return s.registry.Active().Refine(ctx, req.Content, instructions)
	})
}

// restyleHandler handles POST /api/restyle.
func (s *Server) restyleHandler(c *gin.Context) {
	var req RestyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.rejectStage(c, provider.StageRestyle, msgContentRequired)
		return
	}
	format := provider.ParseOutputFormat(optionalString(req.Format))

	s.streamStage(c, provider.StageRestyle, func(ctx context.Context) (<-chan provider.Event, error) {
		return s.registry.Active().Restyle(ctx, req.Content, format)
	})
}

func (s *Server) rejectStage(c *gin.Context, stage provider.Stage, message string) {
	s.metrics.RequestRejected(c.Request.Context(), string(stage), "validation")
	abortWithError(c, http.StatusBadRequest, message)
}

// streamStage relays provider events to the client as SSE frames. A stream
// ends with result + [DONE] on success, with a single error frame on
// provider failure, or silently when the client disconnects.
func (s *Server) streamStage(c *gin.Context, stage provider.Stage, open openFunc) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	log := loggerFor(c).With("stage", stage, "provider", s.registry.Active().ID())
	start := time.Now()
	s.metrics.StreamStarted(ctx, string(stage))

	fw := newFrameWriter(c.Writer)
	fw.open()
	log.Info("Stage stream started")

	outcome := s.relay(ctx, log, fw, stage, open)

	elapsed := time.Since(start)
	s.metrics.StreamFinished(context.WithoutCancel(ctx), string(stage), outcome, elapsed)
	log.Info("Stage stream finished", "outcome", outcome, "duration", elapsed)
}

func (s *Server) relay(ctx context.Context, log *slog.Logger, fw *frameWriter, stage provider.Stage, open openFunc) string {
	events, err := open(ctx)
	if err != nil {
		log.Error("Failed to open provider stream", "error", s.maskError(err))
		return failStream(fw, stage)
	}

	for {
		select {
		case <-ctx.Done():
			return telemetry.OutcomeDisconnected
		case ev, ok := <-events:
			if ctx.Err() != nil {
				return telemetry.OutcomeDisconnected
			}
			if !ok {
				log.Error("Provider stream ended without a result", "error", provider.ErrIncompleteStream)
				return failStream(fw, stage)
			}

			switch e := ev.(type) {
			case *provider.ChunkEvent:
				if err := fw.writeChunk(e.Text); err != nil {
					return telemetry.OutcomeDisconnected
				}
				s.metrics.ChunkSent(ctx, string(stage))
			case *provider.ResultEvent:
				if err := fw.writeResult(e.Result); err != nil {
					return telemetry.OutcomeDisconnected
				}
				if err := fw.writeDone(); err != nil {
					return telemetry.OutcomeDisconnected
				}
				return telemetry.OutcomeCompleted
			case *provider.ErrorEvent:
				attrs := []any{"error", s.maskError(e.Err)}
				var perr *provider.ProviderError
				if errors.As(e.Err, &perr) && perr.Code != "" {
					attrs = append(attrs, "provider_code", perr.Code)
				}
				log.Error("Provider failed mid-stream", attrs...)
				return failStream(fw, stage)
			}
		}
	}
}

// failStream writes the stage's generic failure frame. Provider error
// detail is logged, never sent to the client.
func failStream(fw *frameWriter, stage provider.Stage) string {
	if err := fw.writeError(stage.FailureMessage()); err != nil {
		return telemetry.OutcomeDisconnected
	}
	return telemetry.OutcomeErrored
}

// maskError renders err for the logs with credentials redacted.
func (s *Server) maskError(err error) string {
	if err == nil {
		return "<nil>"
	}
	return s.masker.Mask(err.Error())
}
