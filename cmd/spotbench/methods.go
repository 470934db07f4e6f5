// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/bootstrap"
	"github.com/kraklabs/spotbench/internal/contract"
	"github.com/kraklabs/spotbench/internal/errors"
	"github.com/kraklabs/spotbench/internal/output"
	"github.com/kraklabs/spotbench/internal/ui"
	"github.com/kraklabs/spotbench/pkg/javasrc"
)

// MethodEntry is one declared method in JSON and YAML output.
type MethodEntry struct {
	File      string `json:"file" yaml:"file"`
	Class     string `json:"class" yaml:"class"`
	Method    string `json:"method" yaml:"method"`
	StartLine int    `json:"startline" yaml:"startline"`
}

// runMethods executes the 'methods' CLI command, listing every method and
// constructor declared in Java sources, rendered the way findings render
// them. It shows which names a finding must match to be verified.
//
// Source roots are taken from the arguments, or from .spotbench.yaml.
//
// Examples:
//
//	spotbench methods src/main/java
//	spotbench methods --json | jq '.[].method'
//	spotbench methods --format yaml --exclude '**/test/**'
func runMethods(ctx context.Context, args []string, configPath string, globals GlobalFlags, logger *slog.Logger) {
	fs := flag.NewFlagSet("methods", flag.ExitOnError)
	jsonOutput := fs.Bool("json", globals.JSON, "Output as JSON (same as --format json)")
	format := fs.String("format", "text", "Output format: text, json or yaml")
	workers := fs.Int("workers", 0, "Parallel source parsers (default: all CPUs)")
	exclude := fs.StringSlice("exclude", nil, "Glob patterns of source paths to skip, e.g. **/test/**")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: spotbench methods [options] [source-root...]

Description:
  List methods and constructors declared in Java sources, with parameter
  types in the notation used by findings (generics erased, simple names).

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *jsonOutput && !fs.Changed("format") {
		*format = string(output.FormatJSON)
	}
	outFormat, err := output.ParseFormat(*format)
	if err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid output format",
			err.Error(),
			"Use --format text, json or yaml",
		), *jsonOutput)
	}

	roots := fs.Args()
	filter := javasrc.SourceFilter{MaxFileBytes: contract.MaxSourceBytes}
	if len(roots) == 0 {
		info, err := bootstrap.OpenProject(configPath, logger)
		if err != nil {
			errors.FatalError(errors.NewConfigError(
				"Cannot load configuration",
				err.Error(),
				"Run 'spotbench init' or fix .spotbench.yaml",
				err,
			), *jsonOutput)
		}
		roots = info.SourcePaths()
		filter = info.SourceFilter()
		if !fs.Changed("workers") {
			*workers = info.Config.Workers
		}
	}
	if fs.Changed("exclude") {
		filter.Exclude = *exclude
	}
	if err := filter.Validate(); err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid source exclusion",
			err.Error(),
			"Patterns use glob syntax with ** for any depth, e.g. **/test/**",
		), *jsonOutput)
	}
	if len(roots) == 0 {
		errors.FatalError(errors.NewInputError(
			"No source roots",
			"No directories were given and .spotbench.yaml has no sources",
			"Run 'spotbench methods <dir>' or add sources to .spotbench.yaml",
		), *jsonOutput)
	}

	progress := NewProgressConfig(globals)
	if outFormat != output.FormatText {
		progress.Enabled = false
	}
	index, skipped, err := indexSources(ctx, roots, filter, *workers, progress, logger)
	if err != nil {
		errors.FatalError(err, *jsonOutput)
	}

	if outFormat == output.FormatText {
		if !globals.Quiet {
			warnSkipped(skipped, filter.MaxFileBytes)
		}
		err = printMethods(ui.Out, index)
	} else {
		err = output.Write(os.Stdout, outFormat, methodEntries(index))
	}
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot write methods", err.Error(), "", err), *jsonOutput)
	}
}

// indexSources parses the Java files under roots that pass filter, showing
// a progress bar when enabled. Skipped counts the files the filter left out.
func indexSources(ctx context.Context, roots []string, filter javasrc.SourceFilter, workers int, progress ProgressConfig, logger *slog.Logger) (*javasrc.Index, javasrc.Skipped, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, skipped, err := filter.Find(roots)
	if err != nil {
		return nil, skipped, errors.FromFileError("Cannot list sources", fmt.Sprint(roots), err, func(msg, cause, _ string, err error) *errors.UserError {
			return errors.NewSourceError(msg, cause, "Check the source roots in .spotbench.yaml", err)
		})
	}

	logger.Debug("sources.find.done",
		"roots", len(roots),
		"files", len(files),
		"excluded", skipped.Excluded,
		"too_large", skipped.TooLarge,
	)
	if skipped.TooLarge > 0 {
		logger.Warn("sources.find.skip_large_files", "count", skipped.TooLarge, "limit", filter.MaxFileBytes)
	}

	onFile, finish := sourceProgress(progress, len(files))
	index, err := javasrc.NewIndexer(logger, workers).IndexFiles(ctx, files, onFile)
	finish()
	if err != nil {
		if stderrors.Is(err, context.Canceled) {
			return nil, skipped, errors.NewInternalError("Interrupted", "The run was cancelled", "", err)
		}
		return nil, skipped, errors.NewSourceError("Cannot index sources", err.Error(), "", err)
	}
	return index, skipped, nil
}

// warnSkipped reports source files left out for size.
func warnSkipped(skipped javasrc.Skipped, limit int64) {
	if skipped.TooLarge > 0 {
		ui.Warningf("Skipped %d source files larger than %d bytes", skipped.TooLarge, limit)
	}
}

func methodEntries(index *javasrc.Index) []MethodEntry {
	out := make([]MethodEntry, 0, index.Len())
	for _, file := range index.Files() {
		for _, m := range index.Methods(file) {
			out = append(out, MethodEntry{
				File:      file,
				Class:     m.Class,
				Method:    m.Signature(),
				StartLine: m.StartLine,
			})
		}
	}
	return out
}

func printMethods(w io.Writer, index *javasrc.Index) error {
	for _, file := range index.Files() {
		if _, err := fmt.Fprintln(w, ui.Label(file)); err != nil {
			return err
		}
		for _, m := range index.Methods(file) {
			if _, err := fmt.Fprintf(w, "  %s %s\n", ui.DimText(fmt.Sprintf("%5d", m.StartLine)), m.Signature()); err != nil {
				return err
			}
		}
	}
	return nil
}
