// Package main is the entry point for the edtr command.
//
// edtr replays a YAML action script against a fresh editor session and
// prints the resulting state as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/edtr/internal/app"
	"github.com/dshills/edtr/internal/config"
	"github.com/dshills/edtr/internal/script"
	"github.com/dshills/edtr/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	app.Options
	Save   string
	Watch  bool
	Script string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, ok := parseFlags(args, stdout, stderr)
	if !ok {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := replay(ctx, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !opts.Watch {
		return 0
	}

	if err := watchLoop(ctx, opts, stdout, stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stdout, stderr io.Writer) (options, int, bool) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("edtr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.Load, "load", "", "Restore the named snapshot before replaying")
	fs.StringVar(&opts.Save, "save", "", "Save the final state as the named snapshot")
	fs.BoolVar(&opts.Watch, "watch", false, "Replay again whenever the script changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "edtr - replay editor action scripts\n\n")
		fmt.Fprintf(stderr, "Usage: edtr [options] script.yaml\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  edtr demo.yaml                  Replay and print the final state\n")
		fmt.Fprintf(stderr, "  edtr -save draft demo.yaml      Replay and save a snapshot\n")
		fmt.Fprintf(stderr, "  edtr -load draft more.yaml      Continue from a snapshot\n")
		fmt.Fprintf(stderr, "  edtr -watch demo.yaml           Replay on every save\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, false
		}
		return opts, 2, false
	}

	if showVersion {
		fmt.Fprintf(stdout, "edtr %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, false
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, false
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, 2, false
	}
	opts.Script = fs.Arg(0)
	opts.LogOutput = stderr
	return opts, 0, true
}

// replay runs the script once in a new session and prints the summary.
func replay(ctx context.Context, opts options, stdout io.Writer) error {
	sc, err := script.ReadFile(opts.Script)
	if err != nil {
		return err
	}

	application, err := app.New(ctx, opts.Options)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Replay(ctx, sc); err != nil {
		return err
	}
	if err := application.Flush(); err != nil {
		return err
	}
	if opts.Save != "" {
		if err := application.Save(ctx, opts.Save); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(application.Summary())
}

func watchLoop(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(opts.Script); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "watching %s\n", opts.Script)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op == watch.OpRemove {
				continue
			}
			if err := replay(ctx, opts, stdout); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "watch: %v\n", err)
		}
	}
}
