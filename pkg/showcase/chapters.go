// Package showcase drives the narrated, self-playing walkthrough of the
// pipeline: a fixed timeline of chapters with typewriter-revealed text.
package showcase

import (
	"embed"
	"fmt"
	"time"
)

// ChapterID identifies a chapter of the walkthrough.
type ChapterID string

const (
	ChapterIntro    ChapterID = "intro"
	ChapterResearch ChapterID = "research"
	ChapterRefine   ChapterID = "refine"
	ChapterRestyle  ChapterID = "restyle"
	ChapterOutro    ChapterID = "outro"
)

// Chapter is one segment of the timeline.
type Chapter struct {
	ID       ChapterID
	Label    string
	Duration time.Duration
}

// Chapters is the timeline in playback order.
var Chapters = []Chapter{
	{ID: ChapterIntro, Label: "Introduction", Duration: 4 * time.Second},
	{ID: ChapterResearch, Label: "Research", Duration: 22 * time.Second},
	{ID: ChapterRefine, Label: "Refine", Duration: 18 * time.Second},
	{ID: ChapterRestyle, Label: "Restyle", Duration: 18 * time.Second},
	{ID: ChapterOutro, Label: "Summary", Duration: 5 * time.Second},
}

// TotalDuration is the length of the whole timeline.
func TotalDuration() time.Duration {
	var total time.Duration
	for _, c := range Chapters {
		total += c.Duration
	}
	return total
}

// Lookup returns the chapter with id.
func Lookup(id ChapterID) (Chapter, bool) {
	for _, c := range Chapters {
		if c.ID == id {
			return c, true
		}
	}
	return Chapter{}, false
}

// Offset returns the timeline position at which id begins.
func Offset(id ChapterID) time.Duration {
	var offset time.Duration
	for _, c := range Chapters {
		if c.ID == id {
			return offset
		}
		offset += c.Duration
	}
	return offset
}

// ChapterAt returns the chapter playing at timeline position t. Positions
// past the end belong to the outro.
func ChapterAt(t time.Duration) ChapterID {
	var cumulative time.Duration
	for _, c := range Chapters {
		cumulative += c.Duration
		if t < cumulative {
			return c.ID
		}
	}
	return ChapterOutro
}

//go:embed scripts/*.md
var scriptFS embed.FS

var scripts = map[ChapterID]string{
	ChapterResearch: mustRead("scripts/research.md"),
	ChapterRefine:   mustRead("scripts/refine.md"),
	ChapterRestyle:  mustRead("scripts/restyle.md"),
}

func mustRead(name string) string {
	data, err := scriptFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("showcase: missing embedded script %s: %v", name, err))
	}
	return string(data)
}

// Script returns the text revealed during chapter id, or "" for chapters
// without one.
func Script(id ChapterID) string {
	return scripts[id]
}
