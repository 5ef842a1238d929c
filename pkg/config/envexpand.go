package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv expands environment variables in YAML content using Go templates.
// The {{.VAR_NAME}} syntax leaves literal $ characters untouched, so values
// such as "p@ss$word" survive unchanged.
//
//   - {{.OPENAI_MODEL}} → value of OPENAI_MODEL
//   - "{{.HOST}}:{{.PORT}}" → both variables expanded
//
// Missing variables expand to the empty string. If the content is not a
// valid template it is returned as-is so the YAML parser reports the error.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New("config").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			env[key] = value
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, env); err != nil {
		return data
	}
	return buf.Bytes()
}
