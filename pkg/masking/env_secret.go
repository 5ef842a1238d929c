package masking

import (
	"os"
	"strings"
)

// minSecretLen keeps short values such as "1" or "true" from being
// replaced all over a message.
const minSecretLen = 8

// EnvSecretMasker replaces the current values of the named environment
// variables. Values are read on each call so rotated credentials are
// covered.
type EnvSecretMasker struct {
	names []string
}

// NewEnvSecretMasker creates a masker for the given variable names.
// Empty names are ignored.
func NewEnvSecretMasker(names ...string) *EnvSecretMasker {
	m := &EnvSecretMasker{}
	for _, n := range names {
		if n != "" {
			m.names = append(m.names, n)
		}
	}
	return m
}

func (m *EnvSecretMasker) Name() string { return "env_secret" }

func (m *EnvSecretMasker) AppliesTo(data string) bool {
	for _, v := range m.values() {
		if strings.Contains(data, v) {
			return true
		}
	}
	return false
}

func (m *EnvSecretMasker) Mask(data string) string {
	for _, v := range m.values() {
		data = strings.ReplaceAll(data, v, "__MASKED_SECRET__")
	}
	return data
}

func (m *EnvSecretMasker) values() []string {
	var out []string
	for _, n := range m.names {
		if v := os.Getenv(n); len(v) >= minSecretLen {
			out = append(out, v)
		}
	}
	return out
}
