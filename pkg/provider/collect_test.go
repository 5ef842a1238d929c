package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(events ...Event) <-chan Event {
	ch := make(chan Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestCollect(t *testing.T) {
	ctx := context.Background()

	t.Run("chunks then result", func(t *testing.T) {
		res := &RefineResult{TokenCount: 612}
		text, got, err := Collect(ctx, feed(&ChunkEvent{Text: "ab"}, &ChunkEvent{Text: "cd"}, &ResultEvent{Result: res}))
		require.NoError(t, err)
		assert.Equal(t, "abcd", text)
		assert.Same(t, res, got)
	})

	t.Run("error event", func(t *testing.T) {
		boom := errors.New("boom")
		text, got, err := Collect(ctx, feed(&ChunkEvent{Text: "ab"}, &ErrorEvent{Err: boom}))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "ab", text)
		assert.Nil(t, got)
	})

	t.Run("closed without result", func(t *testing.T) {
		_, got, err := Collect(ctx, feed(&ChunkEvent{Text: "ab"}))
		assert.ErrorIs(t, err, ErrIncompleteStream)
		assert.Nil(t, got)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, got, err := Collect(cctx, make(chan Event))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})
}
