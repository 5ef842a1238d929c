package masking

import (
	"log/slog"
	"regexp"
)

// CompiledPattern holds a pre-compiled regex pattern with its replacement.
type CompiledPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Description string
}

type patternSpec struct {
	name        string
	pattern     string
	replacement string
	description string
}

// builtinPatterns are applied in order; the provider key shapes come
// before the generic key/value rules so they keep their specific marker.
var builtinPatterns = []patternSpec{
	{
		name:        "openai_key",
		pattern:     `\bsk-[A-Za-z0-9_\-]{20,}`,
		replacement: `__MASKED_OPENAI_KEY__`,
		description: "OpenAI secret keys",
	},
	{
		name:        "bearer",
		pattern:     `(?i)\bbearer\s+[A-Za-z0-9_\-\.=]{16,}`,
		replacement: `Bearer __MASKED_TOKEN__`,
		description: "Authorization bearer tokens",
	},
	{
		name:        "api_key",
		pattern:     `(?i)(?:api[_-]?key|apikey)["']?\s*[:=]\s*["']?([A-Za-z0-9_\-]{20,})["']?`,
		replacement: `"api_key": "__MASKED_API_KEY__"`,
		description: "API keys",
	},
	{
		name:        "url_credentials",
		pattern:     `://[^/\s:@]+:[^/\s@]+@`,
		replacement: `://__MASKED_CREDENTIALS__@`,
		description: "Credentials embedded in URLs",
	},
}

// compilePatterns compiles specs. Invalid patterns are logged and skipped.
func compilePatterns(specs []patternSpec) []*CompiledPattern {
	compiled := make([]*CompiledPattern, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile(spec.pattern)
		if err != nil {
			slog.Error("Failed to compile masking pattern, skipping",
				"pattern", spec.name, "error", err)
			continue
		}
		compiled = append(compiled, &CompiledPattern{
			Name:        spec.name,
			Regex:       re,
			Replacement: spec.replacement,
			Description: spec.description,
		})
	}
	return compiled
}
