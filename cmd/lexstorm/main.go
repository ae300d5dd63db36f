// Package main is the entry point for the lexstorm lexer playground.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/lexstorm/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool
	var list, depth bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Theme, "theme", "", "Color theme to use")
	flag.StringVar(&opts.Theme, "t", "", "Color theme to use (shorthand)")
	flag.StringVar(&opts.Color, "color", "", "Colorize output: auto, always or never")
	flag.StringVar(&opts.Eval, "eval", "", "Render this source and exit")
	flag.StringVar(&opts.Eval, "e", "", "Render this source and exit (shorthand)")
	flag.BoolVar(&list, "list", false, "Show the per-token listing")
	flag.BoolVar(&list, "l", false, "Show the per-token listing (shorthand)")
	flag.BoolVar(&depth, "depth", true, "Annotate nesting depth in the listing")
	flag.BoolVar(&depth, "d", true, "Annotate nesting depth in the listing (shorthand)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write diagnostics to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Lexstorm - see how the lexer reads your input\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lexstorm [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lexstorm                    Start the interactive session\n")
		fmt.Fprintf(os.Stderr, "  lexstorm file.go            Render a file\n")
		fmt.Fprintf(os.Stderr, "  lexstorm -l -e 'f(x[1])'    Render a snippet with its token listing\n")
		fmt.Fprintf(os.Stderr, "  cat file.go | lexstorm      Render from a pipe\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Lexstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.Color {
	case "", "auto", "always", "never":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid color mode %q (must be auto, always or never)\n", opts.Color)
		os.Exit(1)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	// Bool flags pass through as pointers so an absent flag leaves the
	// config file's value alone.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "list", "l":
			opts.List = &list
		case "depth", "d":
			opts.Depth = &depth
		}
	})

	// Remaining arguments are files to render
	opts.Files = flag.Args()

	return opts
}
