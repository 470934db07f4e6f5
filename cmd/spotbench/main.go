// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main implements the spotbench CLI, which turns SpotBugs analysis
// reports into benchmark findings.
//
// Usage:
//
//	spotbench init                        Create .spotbench.yaml configuration
//	spotbench convert <descriptor>...     Convert JVM method descriptors
//	spotbench findings [--stdout]         Convert the configured report
//	spotbench methods [dir...]            List methods declared in Java sources
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// GlobalFlags are the options shared by every command.
type GlobalFlags struct {
	// JSON switches command output and errors to JSON. Implies Quiet.
	JSON bool
	// Quiet suppresses progress and informational output.
	Quiet bool
	// NoColor disables colored output.
	NoColor bool
	// Verbose raises the log level: 1 for info, 2 or more for debug.
	Verbose int
}

// main is the entry point for the spotbench CLI.
//
// Global flags are parsed up to the first non-flag argument, which names
// the command; the remaining arguments belong to the command.
func main() {
	var (
		globals     GlobalFlags
		showVersion bool
		configPath  string
	)

	fs := flag.NewFlagSet("spotbench", flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.BoolVar(&showVersion, "version", false, "Show version and exit")
	fs.StringVar(&configPath, "config", "", "Path to .spotbench.yaml (default: ./.spotbench.yaml)")
	fs.BoolVar(&globals.JSON, "json", false, "Output as JSON")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and informational output")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	fs.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `spotbench - SpotBugs results in benchmark notation

spotbench reads SpotBugs XML reports and writes one finding per bug,
with the method rendered as name(params) using Java source type names
instead of JVM descriptors.

Usage:
  spotbench [global options] <command> [options]

Commands:
  init          Create .spotbench.yaml configuration
  convert       Convert JVM method descriptors to parameter lists
  findings      Convert a SpotBugs report into findings.yml and run.yml
  methods       List methods declared in Java sources
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  spotbench init --report target/spotbugsXml.xml --sources src/main/java
  spotbench convert '(ILjava/lang/String;[I)V'
  spotbench findings
  spotbench findings --stdout --format json
  spotbench methods src/main/java

Environment Variables:
  SPOTBENCH_MAX_REPORT_BYTES  Largest report accepted (default: 256 MiB)
  NO_COLOR                    Disable colored output

For detailed command help: spotbench <command> --help

`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if showVersion {
		fmt.Printf("spotbench version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor)
	logger := newLogger(globals)
	slog.SetDefault(logger)

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, globals, logger)
	case "convert":
		runConvert(cmdArgs, globals)
	case "findings":
		runFindings(ctx, cmdArgs, configPath, globals, logger)
	case "methods":
		runMethods(ctx, cmdArgs, configPath, globals, logger)
	case "completion":
		runCompletion(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fs.Usage()
		os.Exit(1)
	}
}

// newLogger builds the stderr logger. Warnings and errors are always shown
// unless Quiet is set; -v and -vv lower the threshold.
func newLogger(globals GlobalFlags) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(globals),
	}))
}

func logLevel(globals GlobalFlags) slog.Level {
	switch {
	case globals.Verbose >= 2:
		return slog.LevelDebug
	case globals.Verbose == 1:
		return slog.LevelInfo
	case globals.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
