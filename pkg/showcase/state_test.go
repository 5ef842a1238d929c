package showcase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline(t *testing.T) {
	assert.Equal(t, 67*time.Second, TotalDuration())
	assert.Equal(t, time.Duration(0), Offset(ChapterIntro))
	assert.Equal(t, 4*time.Second, Offset(ChapterResearch))
	assert.Equal(t, 26*time.Second, Offset(ChapterRefine))
	assert.Equal(t, 44*time.Second, Offset(ChapterRestyle))
	assert.Equal(t, 62*time.Second, Offset(ChapterOutro))
}

func TestChapterAt(t *testing.T) {
	tests := []struct {
		at       time.Duration
		expected ChapterID
	}{
		{at: 0, expected: ChapterIntro},
		{at: 3999 * time.Millisecond, expected: ChapterIntro},
		{at: 4 * time.Second, expected: ChapterResearch},
		{at: 25 * time.Second, expected: ChapterResearch},
		{at: 26 * time.Second, expected: ChapterRefine},
		{at: 44 * time.Second, expected: ChapterRestyle},
		{at: 62 * time.Second, expected: ChapterOutro},
		{at: 90 * time.Second, expected: ChapterOutro},
	}
	for _, tt := range tests {
		t.Run(tt.at.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ChapterAt(tt.at))
		})
	}
}

func TestScripts(t *testing.T) {
	assert.True(t, strings.HasPrefix(Script(ChapterResearch), "## AI in Modern Software Architecture"))
	assert.True(t, strings.HasPrefix(Script(ChapterRefine), "## AI Infrastructure: Executive Brief"))
	assert.Contains(t, Script(ChapterRestyle), "```")
	assert.Empty(t, Script(ChapterIntro))
	assert.Empty(t, Script(ChapterOutro))
}

func TestTypewriter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		elapsed  time.Duration
		expected string
	}{
		{name: "nothing before first tick", text: "abcdef", elapsed: 21 * time.Millisecond, expected: ""},
		{name: "one tick", text: "abcdef", elapsed: 22 * time.Millisecond, expected: "abc"},
		{name: "partial tick rounds down", text: "abcdef", elapsed: 43 * time.Millisecond, expected: "abc"},
		{name: "capped at full text", text: "abcdef", elapsed: time.Second, expected: "abcdef"},
		{name: "counts characters not bytes", text: "→→→→", elapsed: 22 * time.Millisecond, expected: "→→→"},
		{name: "negative elapsed", text: "abc", elapsed: -time.Second, expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Typewriter(tt.text, tt.elapsed, DefaultCharsPerTick, DefaultTypeTick))
		})
	}

	assert.Empty(t, Typewriter("abc", time.Second, 0, DefaultTypeTick))
	assert.Empty(t, Typewriter("abc", time.Second, 3, 0))
}

func TestState_Lifecycle(t *testing.T) {
	var s State
	assert.Equal(t, s, s.Tick(Step), "not started")

	s = s.Start()
	assert.Equal(t, ChapterIntro, s.Chapter)

	for range 40 {
		s = s.Tick(Step)
	}
	assert.Equal(t, 4*time.Second, s.Elapsed)
	assert.Equal(t, ChapterResearch, s.Chapter)

	paused := s.Pause()
	assert.True(t, paused.Paused)
	assert.Equal(t, paused, paused.Tick(Step))
	assert.Empty(t, paused.Displayed())

	s = paused.Resume().Tick(Step)
	assert.Equal(t, 4100*time.Millisecond, s.Elapsed)
	assert.NotEmpty(t, s.Displayed())
	assert.True(t, strings.HasPrefix(Script(ChapterResearch), s.Displayed()))

	for !s.Ended {
		s = s.Tick(Step)
	}
	assert.Equal(t, ChapterOutro, s.Chapter)
	assert.Equal(t, TotalDuration(), s.Elapsed)
	assert.Equal(t, 1.0, s.Progress())
	assert.Equal(t, s, s.Tick(Step), "ended")
	assert.False(t, s.Pause().Paused)

	s = s.Restart()
	assert.Equal(t, State{Started: true, Chapter: ChapterIntro}, s)
}

func TestState_Seek(t *testing.T) {
	s := State{}.Seek(ChapterRefine)
	assert.True(t, s.Started)
	assert.False(t, s.Paused)
	assert.Equal(t, ChapterRefine, s.Chapter)
	assert.Equal(t, Offset(ChapterRefine)+seekNudge, s.Elapsed)
	assert.Equal(t, ChapterRefine, ChapterAt(s.Elapsed))

	ended := State{Started: true, Ended: true, Chapter: ChapterOutro, Elapsed: TotalDuration()}
	s = ended.Seek(ChapterResearch)
	assert.False(t, s.Ended)
	assert.Equal(t, ChapterResearch, s.Chapter)

	assert.Equal(t, s, s.Seek("credits"))
}

func TestState_ChapterProgress(t *testing.T) {
	s := State{}.Seek(ChapterRestyle)
	for range 90 {
		s = s.Tick(Step)
	}
	require.Equal(t, ChapterRestyle, s.Chapter)
	assert.InDelta(t, 0.5, s.ChapterProgress(), 0.01)
	assert.InDelta(t, float64(Offset(ChapterRestyle)+9*time.Second)/float64(TotalDuration()), s.Progress(), 0.01)
}
