package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/prism-ai/prism/pkg/showcase"
)

// ShowcaseCmd plays the walkthrough timeline, printing chapter headers and
// the typewriter text as it is revealed.
type ShowcaseCmd struct {
	Speed float64 `long:"speed" default:"1" description:"Playback speed multiplier"`
}

func (c *ShowcaseCmd) Execute(_ []string) error {
	if c.Speed <= 0 {
		return errors.New("speed must be positive")
	}
	ctx, stop := signalContext()
	defer stop()

	interval := time.Duration(float64(showcase.Step) / c.Speed)
	player := showcase.NewPlayer(showcase.WithInterval(interval))

	errCh := make(chan error, 1)
	go func() { errCh <- player.Run(ctx) }()

	printer := &deltaPrinter{w: stdout}
	var chapter showcase.ChapterID
	for state := range player.Updates() {
		if state.Chapter != chapter {
			chapter = state.Chapter
			printer.reset()
			if ch, ok := showcase.Lookup(chapter); ok {
				fmt.Fprintf(stdout, "\n\n## [%s] %s\n", formatClock(state.Elapsed), ch.Label)
			}
		}
		printer.update(state.Displayed())
	}
	fmt.Fprintln(stdout)

	if err := <-errCh; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func formatClock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
