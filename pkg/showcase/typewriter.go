package showcase

import (
	"time"
	"unicode/utf8"
)

// Typewriter pacing used by the stage chapters.
const (
	DefaultCharsPerTick = 3
	DefaultTypeTick     = 22 * time.Millisecond
)

// Typewriter returns the prefix of text revealed after elapsed time in
// the chapter, advancing charsPerTick characters every tick.
func Typewriter(text string, elapsed time.Duration, charsPerTick int, tick time.Duration) string {
	if elapsed <= 0 || charsPerTick <= 0 || tick <= 0 {
		return ""
	}
	n := int(elapsed/tick) * charsPerTick
	if n >= utf8.RuneCountInString(text) {
		return text
	}
	i := 0
	for range n {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text[:i]
}
