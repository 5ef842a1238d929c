package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageOrdering(t *testing.T) {
	assert.Equal(t, []Stage{StageResearch, StageRefine, StageRestyle}, Stages)

	_, ok := StageResearch.Previous()
	assert.False(t, ok)

	prev, ok := StageRefine.Previous()
	assert.True(t, ok)
	assert.Equal(t, StageResearch, prev)

	next, ok := StageRefine.Next()
	assert.True(t, ok)
	assert.Equal(t, StageRestyle, next)

	_, ok = StageRestyle.Next()
	assert.False(t, ok)

	assert.Equal(t, -1, Stage("publish").Index())
	_, ok = Stage("publish").Next()
	assert.False(t, ok)
}

func TestStageValidity(t *testing.T) {
	for _, s := range Stages {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Stage("").IsValid())
	assert.False(t, Stage("Research").IsValid())
}

func TestStageFailureMessage(t *testing.T) {
	assert.Equal(t, "Research failed", StageResearch.FailureMessage())
	assert.Equal(t, "Refinement failed", StageRefine.FailureMessage())
	assert.Equal(t, "Restyle failed", StageRestyle.FailureMessage())
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{in: "markdown", want: FormatMarkdown},
		{in: "executive-report", want: FormatExecutiveReport},
		{in: "blog-post", want: FormatBlogPost},
		{in: "presentation", want: FormatPresentation},
		{in: "technical-doc", want: FormatTechnicalDoc},
		{in: "", want: FormatExecutiveReport},
		{in: "bogus", want: FormatExecutiveReport},
		{in: "Markdown", want: FormatExecutiveReport},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOutputFormat(tt.in))
		})
	}

	for _, f := range OutputFormats {
		assert.True(t, f.IsValid(), f)
	}
}

func TestResultStages(t *testing.T) {
	tests := []struct {
		result Result
		stage  Stage
		tokens int
	}{
		{result: &ResearchResult{TokenCount: 1}, stage: StageResearch, tokens: 1},
		{result: &RefineResult{TokenCount: 2}, stage: StageRefine, tokens: 2},
		{result: &RestyleResult{TokenCount: 3}, stage: StageRestyle, tokens: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.stage, tt.result.Stage())
		assert.Equal(t, tt.tokens, tt.result.Tokens())
	}
}

func TestEventTypes(t *testing.T) {
	assert.Equal(t, EventTypeChunk, TypeOf(&ChunkEvent{}))
	assert.Equal(t, EventTypeResult, TypeOf(&ResultEvent{}))
	assert.Equal(t, EventTypeError, TypeOf(&ErrorEvent{}))
}
