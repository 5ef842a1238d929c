package demo

import (
	"embed"
	"fmt"

	"github.com/prism-ai/prism/pkg/provider"
)

//go:embed scripts/*.md
var scriptFS embed.FS

var scripts = map[provider.Stage]string{
	provider.StageResearch: mustRead("scripts/research.md"),
	provider.StageRefine:   mustRead("scripts/refine.md"),
	provider.StageRestyle:  mustRead("scripts/restyle.md"),
}

// A missing script is a build defect, so it fails at package init.
func mustRead(name string) string {
	data, err := scriptFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("demo: embedded script %s: %v", name, err))
	}
	return string(data)
}

// Script returns the canned text streamed for stage.
func Script(stage provider.Stage) string {
	return scripts[stage]
}
