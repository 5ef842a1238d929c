// prism-demo drives a running Prism server from the terminal: it runs the
// three pipeline stages, reports health and providers, and plays the
// narrated showcase.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
)

// Options is the root command. The struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Server  string `short:"s" long:"server" env:"PRISM_SERVER" default:"http://localhost:8080" description:"Prism server base URL"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`

	Run       RunCmd       `command:"run" description:"Run research, refine and restyle against the server"`
	Health    HealthCmd    `command:"health" description:"Show server health"`
	Providers ProvidersCmd `command:"providers" description:"List providers or acknowledge a selection"`
	Showcase  ShowcaseCmd  `command:"showcase" description:"Play the narrated walkthrough in the terminal"`
}

var (
	opts   Options
	stdout io.Writer = os.Stdout
)

func newParser() *flags.Parser {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		level := slog.LevelWarn
		if opts.Verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}
	return parser
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// deltaPrinter writes only the part of text not yet printed.
type deltaPrinter struct {
	w       io.Writer
	printed string
}

func (p *deltaPrinter) update(text string) {
	if rest, ok := strings.CutPrefix(text, p.printed); ok {
		fmt.Fprint(p.w, rest)
	} else {
		fmt.Fprint(p.w, "\n"+text)
	}
	p.printed = text
}

func (p *deltaPrinter) reset() {
	p.printed = ""
}

func main() {
	if _, err := newParser().Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, ferr.Message)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
