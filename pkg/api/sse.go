package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prism-ai/prism/pkg/provider"
)

// DoneSentinel terminates every successful stream.
const DoneSentinel = "[DONE]"

var (
	framePrefix = []byte("data: ")
	frameSuffix = []byte("\n\n")
)

type chunkFrame struct {
	Chunk string `json:"chunk"`
}

type resultFrame struct {
	Result provider.Result `json:"result"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// frameWriter writes SSE data frames and flushes each one immediately.
// A write error means the client went away.
type frameWriter struct {
	w gin.ResponseWriter
}

func newFrameWriter(w gin.ResponseWriter) *frameWriter {
	return &frameWriter{w: w}
}

// open commits the 200 status and the streaming headers.
func (f *frameWriter) open() {
	h := f.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	f.w.WriteHeader(http.StatusOK)
	f.w.Flush()
}

func (f *frameWriter) writeChunk(text string) error {
	return f.writeJSON(chunkFrame{Chunk: text})
}

func (f *frameWriter) writeResult(r provider.Result) error {
	return f.writeJSON(resultFrame{Result: r})
}

func (f *frameWriter) writeError(message string) error {
	return f.writeJSON(errorFrame{Error: message})
}

func (f *frameWriter) writeDone() error {
	return f.write([]byte(DoneSentinel))
}

func (f *frameWriter) writeJSON(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.write(bytes.TrimRight(buf.Bytes(), "\n"))
}

func (f *frameWriter) write(payload []byte) error {
	frame := make([]byte, 0, len(framePrefix)+len(payload)+len(frameSuffix))
	frame = append(frame, framePrefix...)
	frame = append(frame, payload...)
	frame = append(frame, frameSuffix...)
	if _, err := f.w.Write(frame); err != nil {
		return err
	}
	f.w.Flush()
	return nil
}
