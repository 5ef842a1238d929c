package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError(t *testing.T) {
	base := errors.New("connection reset")

	tests := []struct {
		name string
		err  *ProviderError
		want string
	}{
		{
			name: "message only",
			err:  NewProviderError("openai", "", "rate limited", nil),
			want: "provider openai: rate limited",
		},
		{
			name: "with code",
			err:  NewProviderError("azure", "429", "rate limited", nil),
			want: "provider azure [429]: rate limited",
		},
		{
			name: "with cause",
			err:  NewProviderError("ollama", "", "stream broken", base),
			want: "provider ollama: stream broken: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	var pe *ProviderError
	wrapped := error(NewProviderError("ollama", "", "stream broken", base))
	assert.True(t, errors.As(wrapped, &pe))
	assert.True(t, errors.Is(wrapped, base))
}
