// Package client consumes the pipeline's streaming stage endpoints and
// reassembles the chunked text into per-stage state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prism-ai/prism/pkg/provider"
	"github.com/prism-ai/prism/pkg/version"
)

const readBufferSize = 32 << 10

// ResearchRequest is the body of POST /api/research.
type ResearchRequest struct {
	Topic string `json:"topic"`
}

// RefineRequest is the body of POST /api/refine.
type RefineRequest struct {
	Content      string `json:"content"`
	Instructions string `json:"instructions"`
}

// RestyleRequest is the body of POST /api/restyle.
type RestyleRequest struct {
	Content string `json:"content"`
	Format  string `json:"format"`
}

// UpdateFunc receives a snapshot after every applied chunk.
type UpdateFunc func(StageState)

// Client talks to a pipeline server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Stage streams are
// long-lived, so the client should not set an overall Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for skipped frames and failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stream runs one stage. The returned state is:
//   - done with the full content after [DONE];
//   - idle with the content received so far when ctx is cancelled (the
//     error wraps ctx.Err()) or the stream fails for any other reason;
//   - zero together with an *HTTPError when the server rejected the request
//     before streaming.
func (c *Client) Stream(ctx context.Context, stage provider.Stage, body any, onUpdate UpdateFunc) (StageState, error) {
	if !stage.IsValid() {
		return StageState{}, fmt.Errorf("%w: %q", provider.ErrUnknownStage, stage)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return StageState{}, fmt.Errorf("encode %s request: %w", stage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/"+string(stage), bytes.NewReader(payload))
	if err != nil {
		return StageState{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("User-Agent", version.Full())

	start := c.now()
	state := StageState{Status: StatusRunning}
	idle := func(err error) (StageState, error) {
		state.Status = StatusIdle
		state.DurationMs = c.now().Sub(start).Milliseconds()
		return state, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return idle(fmt.Errorf("post %s: %w", stage, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StageState{}, decodeHTTPError(resp)
	}

	r := NewReassembler()
	buf := make([]byte, readBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		_, _ = r.Write(buf[:n])

		for {
			// Checked between frames so an abort never applies buffered chunks.
			if err := ctx.Err(); err != nil {
				return idle(fmt.Errorf("%s aborted: %w", stage, err))
			}
			fr, ok := r.Next()
			if !ok {
				break
			}
			switch fr.Kind {
			case FrameChunk:
				state.Content = r.Content()
				state.TokenCount = r.TokenCount()
				state.DurationMs = c.now().Sub(start).Milliseconds()
				if onUpdate != nil {
					onUpdate(state)
				}
			case FrameError:
				c.logger.Warn("Stage stream reported failure", "stage", stage, "message", fr.Error)
				return idle(r.Err())
			case FrameDone:
				state.Status = StatusDone
				state.DurationMs = c.now().Sub(start).Milliseconds()
				return state, nil
			}
		}

		if readErr != nil {
			if err := ctx.Err(); err != nil {
				return idle(fmt.Errorf("%s aborted: %w", stage, err))
			}
			if errors.Is(readErr, io.EOF) {
				return idle(ErrIncompleteStream)
			}
			return idle(fmt.Errorf("read %s stream: %w", stage, readErr))
		}
	}
}

func decodeHTTPError(resp *http.Response) error {
	herr := &HTTPError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		herr.Message = body.Error
	}
	return herr
}

// Health is the body of GET /api/health.
type Health struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Providers map[string]bool `json:"providers"`
}

// ProviderList is the body of GET /api/settings/providers.
type ProviderList struct {
	Active    string          `json:"active"`
	Providers []provider.Info `json:"providers"`
}

// Health fetches the server health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Providers fetches the provider catalog.
func (c *Client) Providers(ctx context.Context) (*ProviderList, error) {
	var list ProviderList
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings/providers", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SelectProvider asks the server to select id and returns the id it acknowledged.
func (c *Client) SelectProvider(ctx context.Context, id string) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Active  string `json:"active"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/settings/providers", map[string]string{"providerId": id}, &resp); err != nil {
		return "", err
	}
	return resp.Active, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", version.Full())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeHTTPError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
