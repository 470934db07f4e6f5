// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/bootstrap"
	"github.com/kraklabs/spotbench/internal/config"
	"github.com/kraklabs/spotbench/internal/errors"
	"github.com/kraklabs/spotbench/internal/output"
	"github.com/kraklabs/spotbench/internal/ui"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force, nonInteractive bool
	projectID, report     string
	outputDir             string
	sources               []string
}

// runInit executes the 'init' CLI command, creating .spotbench.yaml in the
// working directory and the findings output directory.
//
// When stdin is a terminal and -y is not given, the report path and source
// roots are prompted for, with flag values as defaults.
//
// Flags:
//   - --force: Overwrite existing configuration
//   - -y: Non-interactive mode, use flags and defaults
//   - --project-id: Project identifier (default: directory name)
//   - --report: SpotBugs XML report path
//   - --output-dir: Findings output directory
//   - --sources: Java source roots
//
// Examples:
//
//	spotbench init
//	spotbench init -y --report target/spotbugsXml.xml --sources src/main/java
func runInit(args []string, globals GlobalFlags, logger *slog.Logger) {
	f := parseInitFlags(args)

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot get current directory", err.Error(), "", err), globals.JSON)
	}

	cfg := bootstrap.ProjectConfig{
		Dir:       cwd,
		ProjectID: f.projectID,
		Report:    f.report,
		OutputDir: f.outputDir,
		Sources:   f.sources,
		Force:     f.force,
	}
	if !f.nonInteractive && !globals.JSON && isatty.IsTerminal(os.Stdin.Fd()) {
		runInteractiveConfig(bufio.NewReader(os.Stdin), ui.Out, &cfg)
	}

	info, err := bootstrap.InitProject(cfg, logger)
	if err != nil {
		if stderrors.Is(err, bootstrap.ErrAlreadyInitialized) {
			errors.FatalError(errors.NewConfigError(
				"Configuration already exists",
				config.Path(cwd)+" is present",
				"Use 'spotbench init --force' to overwrite it",
				err,
			), globals.JSON)
		}
		errors.FatalError(errors.FromFileError("Cannot initialize project", cwd, err, errors.NewConfigError), globals.JSON)
	}

	if globals.JSON {
		if err := output.JSONTo(os.Stdout, info.Config); err != nil {
			errors.FatalError(errors.NewInternalError("Cannot write configuration", err.Error(), "", err), true)
		}
		return
	}
	ui.Successf("Created %s", info.ConfigPath)
	if !globals.Quiet {
		printNextSteps(info)
	}
}

func parseInitFlags(args []string) initFlags {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.BoolVarP(&f.nonInteractive, "yes", "y", false, "Non-interactive mode (use flags and defaults)")
	fs.StringVar(&f.projectID, "project-id", "", "Project identifier (default: directory name)")
	fs.StringVar(&f.report, "report", "", "SpotBugs XML report (default: spotbugs.xml)")
	fs.StringVar(&f.outputDir, "output-dir", "", "Findings output directory (default: findings)")
	fs.StringSliceVar(&f.sources, "sources", nil, "Java source roots, comma-separated")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: spotbench init [options]

Creates .spotbench.yaml in the current directory.

Examples:
  spotbench init
  spotbench init -y --report target/spotbugsXml.xml --sources src/main/java
  spotbench init --force --project-id bench

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return f
}

// runInteractiveConfig prompts for the settings most projects change.
func runInteractiveConfig(reader *bufio.Reader, w io.Writer, cfg *bootstrap.ProjectConfig) {
	defaults := config.Default(cfg.ProjectID)
	if cfg.ProjectID == "" {
		defaults.ProjectID = filepath.Base(cfg.Dir)
	}
	if cfg.Report == "" {
		cfg.Report = defaults.Report
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}

	fmt.Fprintln(w, "spotbench Project Configuration")
	fmt.Fprintln(w, "===============================")
	fmt.Fprintln(w)

	cfg.ProjectID = prompt(reader, w, "Project ID", defaults.ProjectID)
	cfg.Report = prompt(reader, w, "SpotBugs XML report", cfg.Report)
	cfg.OutputDir = prompt(reader, w, "Output directory", cfg.OutputDir)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Source roots let findings be checked against declared methods.")
	fmt.Fprintln(w, "Separate several roots with commas; leave empty to skip.")
	cfg.Sources = splitList(prompt(reader, w, "Java source roots", strings.Join(cfg.Sources, ",")))
	fmt.Fprintln(w)
}

// prompt displays label and reads one line from reader. An empty answer
// returns defaultValue.
func prompt(reader *bufio.Reader, w io.Writer, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(w, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(w, "%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printNextSteps(info *bootstrap.ProjectInfo) {
	fmt.Fprintln(ui.Out)
	ui.Info("Next steps:")
	fmt.Fprintf(ui.Out, "  1. Run SpotBugs with XML output into %s\n", info.Config.Report)
	fmt.Fprintln(ui.Out, "  2. Run 'spotbench findings' to write findings.yml and run.yml")
	if len(info.Config.Sources) == 0 {
		fmt.Fprintln(ui.Out)
		ui.Info("Tip: add 'sources' to .spotbench.yaml to verify findings against your code")
	}
}
