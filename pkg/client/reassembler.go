package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// FrameKind identifies a decoded stream frame.
type FrameKind int

const (
	FrameChunk FrameKind = iota + 1
	FrameResult
	FrameError
	FrameDone
)

// Frame is one applied frame.
type Frame struct {
	Kind   FrameKind
	Chunk  string
	Error  string
	Result json.RawMessage
}

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// Reassembler rebuilds stage text from an SSE byte stream delivered in
// arbitrary fragments. Bytes are split on '\n' only, so a fragment boundary
// may fall anywhere, including inside a multi-byte rune. Frames are applied
// one at a time by Next, which lets a consumer stop between frames.
type Reassembler struct {
	buf     []byte
	done    bool
	content strings.Builder
	tokens  int
	chunks  int
	failed  bool
	errMsg  string
	result  json.RawMessage
}

// NewReassembler returns an empty reassembler.
func NewReassembler() *Reassembler {
	return &Reassembler{}
}

// Write buffers p. Bytes after [DONE] are discarded. It never fails.
func (r *Reassembler) Write(p []byte) (int, error) {
	if !r.done {
		r.buf = append(r.buf, p...)
	}
	return len(p), nil
}

// Next applies the next complete frame and returns it. It returns false
// when no complete line is buffered or the stream is done. Lines that are
// not data frames, malformed JSON and empty chunks are skipped.
func (r *Reassembler) Next() (Frame, bool) {
	for !r.done {
		i := bytes.IndexByte(r.buf, '\n')
		if i < 0 {
			return Frame{}, false
		}
		line := string(r.buf[:i])
		r.buf = r.buf[i+1:]

		if fr, ok := r.apply(line); ok {
			return fr, true
		}
	}
	return Frame{}, false
}

// Feed writes p and applies every complete frame, returning the number of
// chunk frames applied.
func (r *Reassembler) Feed(p []byte) int {
	_, _ = r.Write(p)
	n := 0
	for {
		fr, ok := r.Next()
		if !ok {
			return n
		}
		if fr.Kind == FrameChunk {
			n++
		}
	}
}

func (r *Reassembler) apply(line string) (Frame, bool) {
	raw, ok := strings.CutPrefix(line, dataPrefix)
	if !ok {
		return Frame{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == doneSentinel {
		r.done = true
		r.buf = nil
		return Frame{Kind: FrameDone}, true
	}

	var payload struct {
		Chunk  *string         `json:"chunk"`
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Frame{}, false
	}

	switch {
	case payload.Chunk != nil:
		if *payload.Chunk == "" {
			return Frame{}, false
		}
		r.content.WriteString(*payload.Chunk)
		r.tokens += EstimateTokens(*payload.Chunk)
		r.chunks++
		return Frame{Kind: FrameChunk, Chunk: *payload.Chunk}, true
	case payload.Error != nil:
		r.failed = true
		r.errMsg = *payload.Error
		return Frame{Kind: FrameError, Error: *payload.Error}, true
	case len(payload.Result) > 0:
		r.result = payload.Result
		return Frame{Kind: FrameResult, Result: payload.Result}, true
	}
	return Frame{}, false
}

// Content returns the concatenation of all applied chunks.
func (r *Reassembler) Content() string { return r.content.String() }

// TokenCount returns the running token estimate.
func (r *Reassembler) TokenCount() int { return r.tokens }

// Chunks returns the number of chunks applied.
func (r *Reassembler) Chunks() int { return r.chunks }

// Done reports whether [DONE] was seen.
func (r *Reassembler) Done() bool { return r.done }

// Result returns the raw terminal result frame, if one was seen.
func (r *Reassembler) Result() json.RawMessage { return r.result }

// Err returns a *StreamError if the server sent an error frame.
func (r *Reassembler) Err() error {
	if !r.failed {
		return nil
	}
	return &StreamError{Message: r.errMsg}
}

// EstimateTokens approximates the token count of one chunk as
// ceil(characters / 4).
func EstimateTokens(chunk string) int {
	return (utf8.RuneCountInString(chunk) + 3) / 4
}
