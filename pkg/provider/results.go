package provider

// Result is the terminal payload of a stage. It is built only after the
// full chunk sequence has been produced.
type Result interface {
	Stage() Stage
	Tokens() int
}

// Citation is a source reference attached to research output.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Domain  string `json:"domain"`
}

// ResearchResult summarises a research run.
type ResearchResult struct {
	Summary     string     `json:"summary"`
	KeyInsights []string   `json:"keyInsights"`
	Citations   []Citation `json:"citations"`
	TokenCount  int        `json:"tokenCount"`
	DurationMs  int64      `json:"durationMs"`
}

// RefineResult summarises a refinement run.
type RefineResult struct {
	Content    string   `json:"content"`
	Changes    []string `json:"changes"`
	TokenCount int      `json:"tokenCount"`
	DurationMs int64    `json:"durationMs"`
}

// RestyleResult summarises a restyle run.
type RestyleResult struct {
	Content    string       `json:"content"`
	Format     OutputFormat `json:"format"`
	WordCount  int          `json:"wordCount"`
	TokenCount int          `json:"tokenCount"`
	DurationMs int64        `json:"durationMs"`
}

func (r *ResearchResult) Stage() Stage { return StageResearch }
func (r *RefineResult) Stage() Stage   { return StageRefine }
func (r *RestyleResult) Stage() Stage  { return StageRestyle }

func (r *ResearchResult) Tokens() int { return r.TokenCount }
func (r *RefineResult) Tokens() int   { return r.TokenCount }
func (r *RestyleResult) Tokens() int  { return r.TokenCount }
