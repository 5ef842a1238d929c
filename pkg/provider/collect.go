package provider

import (
	"context"
	"strings"
)

// Collect drains events into the concatenated text and the terminal result.
// It returns the ErrorEvent's error, ctx.Err() when cancelled, or
// ErrIncompleteStream when the channel closes without a result.
func Collect(ctx context.Context, events <-chan Event) (string, Result, error) {
	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return sb.String(), nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if err := ctx.Err(); err != nil {
					return sb.String(), nil, err
				}
				return sb.String(), nil, ErrIncompleteStream
			}
			switch e := ev.(type) {
			case *ChunkEvent:
				sb.WriteString(e.Text)
			case *ResultEvent:
				return sb.String(), e.Result, nil
			case *ErrorEvent:
				return sb.String(), nil, e.Err
			}
		}
	}
}
