package provider

// OutputFormat is the target document style for the restyle stage.
type OutputFormat string

const (
	FormatMarkdown        OutputFormat = "markdown"
	FormatExecutiveReport OutputFormat = "executive-report"
	FormatBlogPost        OutputFormat = "blog-post"
	FormatPresentation    OutputFormat = "presentation"
	FormatTechnicalDoc    OutputFormat = "technical-doc"
)

// DefaultOutputFormat is used when a request omits the format or names an unknown one.
const DefaultOutputFormat = FormatExecutiveReport

// OutputFormats lists every accepted format.
var OutputFormats = []OutputFormat{
	FormatMarkdown,
	FormatExecutiveReport,
	FormatBlogPost,
	FormatPresentation,
	FormatTechnicalDoc,
}

// IsValid checks if the format is a member of the closed set
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatExecutiveReport, FormatBlogPost, FormatPresentation, FormatTechnicalDoc:
		return true
	default:
		return false
	}
}

// ParseOutputFormat coerces any value outside the set to DefaultOutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	if f := OutputFormat(s); f.IsValid() {
		return f
	}
	return DefaultOutputFormat
}
