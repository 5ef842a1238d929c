package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/prism-ai/prism/pkg/client"
)

const requestTimeout = 10 * time.Second

func contextWithOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// HealthCmd prints the server health report.
type HealthCmd struct{}

func (c *HealthCmd) Execute(_ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	health, err := client.New(opts.Server).Health(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(health)
}

// ProvidersCmd lists the provider catalog, or acknowledges a selection.
type ProvidersCmd struct {
	Select string `long:"select" description:"Provider ID to select"`
}

func (c *ProvidersCmd) Execute(_ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	cl := client.New(opts.Server)

	if c.Select != "" {
		active, err := cl.SelectProvider(ctx, c.Select)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Selected %s (not persisted; the server keeps its active provider)\n", active)
		return nil
	}

	list, err := cl.Providers(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONFIGURED\tACTIVE")
	for _, p := range list.Providers {
		active := ""
		if p.ID == list.Active {
			active = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", p.ID, p.Name, p.Configured, active)
	}
	return tw.Flush()
}
