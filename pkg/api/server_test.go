package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/prism-ai/prism/pkg/config"
	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/provider/demo"
	"github.com/prism-ai/prism/pkg/stream"
	"github.com/prism-ai/prism/pkg/telemetry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider replays a fixed event list for every stage. With hold set it
// keeps the stream open after the events until ctx is cancelled. The last
// refine instructions and restyle format it received are kept for assertions.
type stubProvider struct {
	events    []provider.Event
	openErr   error
	hold      bool
	cancelled chan struct{}

	instructions string
	format       provider.OutputFormat
}

var _ provider.Provider = (*stubProvider)(nil)

func (p *stubProvider) ID() string   { return "stub" }
func (p *stubProvider) Name() string { return "Stub" }
func (p *stubProvider) IsDemo() bool { return false }

func (p *stubProvider) Research(ctx context.Context, _ string) (<-chan provider.Event, error) {
	return p.open(ctx)
}

func (p *stubProvider) Refine(ctx context.Context, _, instructions string) (<-chan provider.Event, error) {
	p.instructions = instructions
	return p.open(ctx)
}

func (p *stubProvider) Restyle(ctx context.Context, _ string, format provider.OutputFormat) (<-chan provider.Event, error) {
	p.format = format
	return p.open(ctx)
}

func (p *stubProvider) open(ctx context.Context) (<-chan provider.Event, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	ch := make(chan provider.Event)
	go func() {
		defer close(ch)
		for _, ev := range p.events {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
		if p.hold {
			<-ctx.Done()
			close(p.cancelled)
		}
	}()
	return ch, nil
}

func newDemoServer(t *testing.T) *Server {
	t.Helper()
	return newTestServer(t, demo.New(stream.NewEmitter(stream.WithDelay(0, 0))), nil)
}

func newTestServer(t *testing.T, p provider.Provider, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	return NewServer(cfg, provider.NewRegistry(p, cfg.Providers), telemetry.NewMetrics(nil))
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// dataFrames returns the payload of every "data: " frame in body.
func dataFrames(t *testing.T, body string) []string {
	t.Helper()
	require.True(t, strings.HasSuffix(body, "\n\n"), "stream must end on a frame boundary")
	var frames []string
	for _, raw := range strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n") {
		payload, ok := strings.CutPrefix(raw, "data: ")
		require.True(t, ok, "unexpected frame %q", raw)
		frames = append(frames, payload)
	}
	return frames
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newDemoServer(t)
	rec := doJSON(s, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_OpenError(t *testing.T) {
	s := newTestServer(t, &stubProvider{openErr: errors.New("dial failed")}, nil)

	rec := doJSON(s, http.MethodPost, "/api/restyle", `{"content":"x"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{`{"error":"Restyle failed"}`}, dataFrames(t, rec.Body.String()))
}
