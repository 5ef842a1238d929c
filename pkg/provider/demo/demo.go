// Package demo implements provider.Provider with pre-scripted output that
// streams at roughly model speed, so the whole pipeline can be exercised
// without credentials.
package demo

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/stream"
)

// Provider is the scripted backend.
type Provider struct {
	emitter *stream.Emitter
	now     func() time.Time
}

var _ provider.Provider = (*Provider)(nil)

// New creates a scripted provider that paces output with emitter.
func New(emitter *stream.Emitter) *Provider {
	return &Provider{
		emitter: emitter,
		now:     time.Now,
	}
}

func (p *Provider) ID() string   { return provider.IDDemo }
func (p *Provider) Name() string { return "Demo Mode" }
func (p *Provider) IsDemo() bool { return true }

// Research streams the research script. The topic does not influence the text.
func (p *Provider) Research(ctx context.Context, topic string) (<-chan provider.Event, error) {
	slog.Debug("Demo research requested", "topic_len", len(topic))
	return p.run(ctx, provider.StageResearch, func(text string, elapsed time.Duration) provider.Result {
		return &provider.ResearchResult{
			Summary:     text,
			KeyInsights: slices.Clone(researchInsights),
			Citations:   slices.Clone(researchCitations),
			TokenCount:  ResearchTokenCount,
			DurationMs:  elapsed.Milliseconds(),
		}
	}), nil
}

// Refine streams the refine script. Content and instructions are accepted but unused.
func (p *Provider) Refine(ctx context.Context, content, instructions string) (<-chan provider.Event, error) {
	slog.Debug("Demo refine requested", "content_len", len(content), "instructions_len", len(instructions))
	return p.run(ctx, provider.StageRefine, func(text string, elapsed time.Duration) provider.Result {
		return &provider.RefineResult{
			Content:    text,
			Changes:    slices.Clone(refineChanges),
			TokenCount: RefineTokenCount,
			DurationMs: elapsed.Milliseconds(),
		}
	}), nil
}

// Restyle streams the restyle script and echoes format in the result.
// Callers are expected to pass a normalised format (see provider.ParseOutputFormat).
func (p *Provider) Restyle(ctx context.Context, content string, format provider.OutputFormat) (<-chan provider.Event, error) {
	slog.Debug("Demo restyle requested", "content_len", len(content), "format", format)
	return p.run(ctx, provider.StageRestyle, func(text string, elapsed time.Duration) provider.Result {
		return &provider.RestyleResult{
			Content:    text,
			Format:     format,
			WordCount:  WordCount(text),
			TokenCount: RestyleTokenCount,
			DurationMs: elapsed.Milliseconds(),
		}
	}), nil
}

// run streams the stage script through the emitter on a goroutine. The
// result is only built after the emitter is exhausted; a cancelled ctx
// closes the channel without one.
func (p *Provider) run(ctx context.Context, stage provider.Stage, build func(text string, elapsed time.Duration) provider.Result) <-chan provider.Event {
	events := make(chan provider.Event)
	start := p.now()

	go func() {
		defer close(events)

		var sb strings.Builder
		for chunk := range p.emitter.Emit(ctx, Script(stage)) {
			sb.WriteString(chunk)
			select {
			case events <- &provider.ChunkEvent{Text: chunk}:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			slog.Debug("Demo stream cancelled", "stage", stage, "emitted", sb.Len())
			return
		}

		select {
		case events <- &provider.ResultEvent{Result: build(sb.String(), p.now().Sub(start))}:
		case <-ctx.Done():
		}
	}()

	return events
}

// WordCount counts space-separated fields the way the restyle result
// reports them: newlines do not split words, and an empty text counts as one.
func WordCount(text string) int {
	return strings.Count(text, " ") + 1
}
