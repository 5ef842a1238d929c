package demo

import "github.com/prism-ai/prism/pkg/provider"

// Synthetic token counts reported in each terminal result.
const (
	ResearchTokenCount = 847
	RefineTokenCount   = 612
	RestyleTokenCount  = 523
)

var researchInsights = []string{
	"AI as Infrastructure, Not Feature",
	"Streaming is the New Request/Response",
	"Multi-Provider Architecture Reduces Risk",
	"Prompt Engineering is Software Engineering",
	"Observability is Non-Negotiable",
}

var researchCitations = []provider.Citation{
	{
		Title:   "AI Infrastructure Patterns at Scale",
		URL:     "https://example.com/ai-infrastructure",
		Snippet: "Leading organizations are treating AI capabilities as infrastructure...",
		Domain:  "techreview.example.com",
	},
	{
		Title:   "The Economics of LLM Provider Portability",
		URL:     "https://example.com/provider-portability",
		Snippet: "Provider abstraction has become a critical architectural pattern...",
		Domain:  "engineering.example.com",
	},
	{
		Title:   "Streaming APIs and Perceived Performance",
		URL:     "https://example.com/streaming-ux",
		Snippet: "Users tolerate slower total completion times when they see incremental progress...",
		Domain:  "ux.example.com",
	},
}

var refineChanges = []string{
	"Reduced length by 40% for executive audience",
	"Replaced technical jargon with strategic framing",
	"Added action-oriented section headers",
	"Converted paragraph lists to scannable bullet points",
	"Strengthened call-to-action language",
}
