package client

import (
	"errors"
	"fmt"
)

// ErrIncompleteStream is returned when the body ends before [DONE].
var ErrIncompleteStream = errors.New("stream ended before [DONE]")

// HTTPError is returned when the server rejects a request before streaming.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Message)
}

// StreamError carries the message of a server error frame.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return "stream failed: " + e.Message
}

// IsValidationError reports whether err is a 400 from the server.
func IsValidationError(err error) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.StatusCode == 400
}
