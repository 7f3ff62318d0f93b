// Package main is the entry point for the richsheet document viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/richsheet/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	LogFile string
	Dump    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	dump := opts.Dump || !term.IsTerminal(int(os.Stdout.Fd()))

	logOut, closeLog, err := logOutput(opts.LogFile, dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
		return 1
	}
	defer closeLog()
	opts.LogOutput = logOut

	application, err := app.New(opts.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if dump {
		if err := application.Dump(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runTerminal(application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runTerminal opens the terminal and runs the viewer until the user quits
// or a signal arrives. The screen is finalized before any error is reported.
func runTerminal(application *app.Application) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	if err := application.SetScreen(screen); err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// logOutput picks where log entries go. The viewer draws on the terminal,
// so without a log file its logs are dropped.
func logOutput(path string, dump bool) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if dump {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the document when its file changes")
	flag.BoolVar(&opts.Watch, "w", false, "Reload the document when its file changes (shorthand)")
	flag.BoolVar(&opts.Dump, "dump", false, "Print block descriptors as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richsheet - rich-text document viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richsheet [options] <document.json>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  q, Esc              Quit\n")
		fmt.Fprintf(os.Stderr, "  Shift+Left/Right    Extend the selection\n")
		fmt.Fprintf(os.Stderr, "  Alt+b/i/u/s         Toggle bold, italic, underline, strike\n")
		fmt.Fprintf(os.Stderr, "  Alt+q/l             Toggle quote, list item\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  richsheet doc.json              View a document\n")
		fmt.Fprintf(os.Stderr, "  richsheet -w -c sheet.toml doc.json\n")
		fmt.Fprintf(os.Stderr, "  richsheet -dump doc.json        Print its blocks\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("richsheet %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.DocumentPath = flag.Arg(0)

	return opts
}
