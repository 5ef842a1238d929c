package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prism-ai/prism/pkg/client"
	"github.com/prism-ai/prism/pkg/pipeline"
	"github.com/prism-ai/prism/pkg/provider"
)

// RunCmd runs the full pipeline once.
type RunCmd struct {
	Topic        string        `short:"t" long:"topic" required:"true" description:"Research topic"`
	Instructions string        `short:"i" long:"instructions" description:"Refinement instructions"`
	Format       string        `short:"F" long:"format" default:"executive-report" choice:"markdown" choice:"executive-report" choice:"blog-post" choice:"presentation" choice:"technical-doc" description:"Restyle output format"`
	Output       string        `short:"o" long:"output" description:"Write the final output to this file"`
	Timeout      time.Duration `long:"timeout" default:"5m" description:"Overall time limit"`
	Quiet        bool          `short:"q" long:"quiet" description:"Only print the final output"`
}

func (c *RunCmd) Execute(_ []string) error {
	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := contextWithOptionalTimeout(ctx, c.Timeout)
	defer cancel()

	printer := &deltaPrinter{w: stdout}
	var current provider.Stage
	observe := func(snap pipeline.Snapshot) {
		if c.Quiet || current == "" {
			return
		}
		if st := snap.Stage(current); st.IsRunning() {
			printer.update(st.Content)
		}
	}

	session := pipeline.NewSession(client.New(opts.Server), pipeline.WithObserver(observe))
	in := pipeline.Inputs{
		Topic:        c.Topic,
		Instructions: c.Instructions,
		Format:       provider.ParseOutputFormat(c.Format),
	}

	for _, stage := range provider.Stages {
		if err := session.Select(stage); err != nil {
			return err
		}
		current = stage
		printer.reset()
		if !c.Quiet {
			fmt.Fprintf(stdout, "\n=== %s ===\n", stage.Label())
		}

		if err := session.Run(ctx, stage, in); err != nil {
			return fmt.Errorf("%s: %w", stage.Label(), err)
		}

		st := session.Snapshot().Stage(stage)
		if !st.IsDone() {
			return fmt.Errorf("%s: %w", stage.Label(), errAborted)
		}
		if !c.Quiet {
			fmt.Fprintf(stdout, "\n--- %s done: ~%d tokens in %.1fs\n",
				stage.Label(), st.TokenCount, float64(st.DurationMs)/1000)
		}
		slog.Debug("Stage finished", "stage", stage, "chars", len(st.Content))
	}

	output := session.Output()
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(output), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stdout, "\nWrote %s\n", c.Output)
	} else if c.Quiet {
		fmt.Fprintln(stdout, output)
	}
	return nil
}

var errAborted = errors.New("aborted")
