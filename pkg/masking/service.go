// Package masking redacts credentials from text before it reaches the logs.
package masking

import (
	"log/slog"

	"github.com/prism-ai/prism/pkg/config"
)

// Service applies code-based maskers then regex patterns. It is created
// once at startup and is safe for concurrent use.
type Service struct {
	patterns    []*CompiledPattern
	codeMaskers []Masker
}

// NewService creates a masking service covering the built-in patterns and
// the credential variables named in providers. A nil providers config
// masks only the built-in patterns.
func NewService(providers *config.ProvidersConfig) *Service {
	s := &Service{
		patterns: compilePatterns(builtinPatterns),
	}
	if providers != nil {
		s.codeMaskers = append(s.codeMaskers, NewEnvSecretMasker(
			providers.OpenAI.APIKeyEnv,
			providers.Azure.APIKeyEnv,
			providers.Azure.EndpointEnv,
			providers.Ollama.BaseURLEnv,
		))
	}

	slog.Debug("Masking service initialized",
		"compiled_patterns", len(s.patterns),
		"code_maskers", len(s.codeMaskers))
	return s
}

// Mask returns content with every known secret replaced.
func (s *Service) Mask(content string) string {
	if s == nil || content == "" {
		return content
	}

	masked := content

	// Phase 1: exact secret values
	for _, m := range s.codeMaskers {
		if m.AppliesTo(masked) {
			masked = m.Mask(masked)
		}
	}

	// Phase 2: regex sweep
	for _, p := range s.patterns {
		masked = p.Regex.ReplaceAllString(masked, p.Replacement)
	}
	return masked
}
