// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/bootstrap"
	"github.com/kraklabs/spotbench/internal/errors"
	"github.com/kraklabs/spotbench/internal/output"
	"github.com/kraklabs/spotbench/internal/ui"
	"github.com/kraklabs/spotbench/pkg/findings"
	"github.com/kraklabs/spotbench/pkg/javasrc"
	"github.com/kraklabs/spotbench/pkg/report"
)

// findingsOptions is the resolved configuration of one findings run.
type findingsOptions struct {
	Report          string
	OutputDir       string
	Sources         []string
	SourceFilter    javasrc.SourceFilter
	Filter          report.Filter
	DetectorVersion string
	Workers         int
}

// findingsResult is what a findings run produced.
type findingsResult struct {
	Run      findings.RunInfo   `json:"run"`
	Findings []findings.Finding `json:"findings"`

	// Bugs is the number of bugs in the report before filtering.
	Bugs int `json:"-"`
	// Verified counts findings whose method was found in the sources.
	Verified int `json:"-"`
	// Skipped counts source files the filter left out.
	Skipped javasrc.Skipped `json:"-"`
}

// runFindings executes the 'findings' CLI command.
//
// It reads the SpotBugs report named by .spotbench.yaml (or --report),
// filters bugs by rank, priority and bug pattern, converts each bug's
// method descriptor to benchmark notation and writes findings.yml and
// run.yml to the output directory. With sources configured, each finding
// is marked verified when its method is declared in the sources.
//
// Flags:
//   - --report: SpotBugs XML report (overrides config)
//   - --output-dir: Directory for findings.yml and run.yml (overrides config)
//   - --sources: Java source roots used for verification (overrides config)
//   - --source-exclude: Source path globs to skip (overrides config)
//   - --stdout: Write findings to stdout instead of the output directory
//   - --format: Output format with --stdout: yaml or json
//   - --max-rank, --max-priority, --include, --exclude: Bug filters
//   - --metrics-file: Write conversion metrics in Prometheus text format
//
// Examples:
//
//	spotbench findings
//	spotbench findings --report target/spotbugsXml.xml --max-rank 14
//	spotbench findings --stdout --format json
func runFindings(ctx context.Context, args []string, configPath string, globals GlobalFlags, logger *slog.Logger) {
	fs := flag.NewFlagSet("findings", flag.ExitOnError)
	reportPath := fs.String("report", "", "SpotBugs XML report (default: from config)")
	outputDir := fs.String("output-dir", "", "Directory for findings.yml and run.yml (default: from config)")
	sources := fs.StringSlice("sources", nil, "Java source roots used to verify findings")
	sourceExclude := fs.StringSlice("source-exclude", nil, "Glob patterns of source paths to skip, e.g. **/test/**")
	toStdout := fs.Bool("stdout", false, "Write findings to stdout instead of the output directory")
	format := fs.String("format", "yaml", "Output format with --stdout: yaml or json")
	maxRank := fs.Int("max-rank", 0, "Keep bugs with rank <= N (1-20)")
	maxPriority := fs.Int("max-priority", 0, "Keep bugs with priority <= N (1 high, 3 low)")
	include := fs.StringSlice("include", nil, "Bug pattern globs to keep, e.g. NP_*")
	exclude := fs.StringSlice("exclude", nil, "Bug pattern globs to drop")
	detectorVersion := fs.String("detector-version", "", "Detector version recorded in run.yml")
	workers := fs.Int("workers", 0, "Parallel source parsers (default: all CPUs)")
	metricsFile := fs.String("metrics-file", "", "Write conversion metrics to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: spotbench findings [options]

Description:
  Convert a SpotBugs XML report into benchmark findings. Each bug with a
  primary method becomes one finding; findings are ordered by rank.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  spotbench findings
  spotbench findings --report target/spotbugsXml.xml --sources src/main/java
  spotbench findings --stdout --format json --include 'NP_*'
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if globals.JSON && !fs.Changed("format") {
		*format = string(output.FormatJSON)
	}
	outFormat, err := output.ParseFormat(*format)
	if err != nil || outFormat == output.FormatText {
		errors.FatalError(errors.NewInputError(
			"Invalid output format",
			fmt.Sprintf("Format %q is not supported for findings", *format),
			"Use --format yaml or --format json",
		), globals.JSON)
	}

	info, err := bootstrap.OpenProject(configPath, logger)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Run 'spotbench init' or fix .spotbench.yaml",
			err,
		), globals.JSON)
	}

	opts := findingsOptionsFrom(info)
	if fs.Changed("report") {
		opts.Report = *reportPath
	}
	if fs.Changed("output-dir") {
		opts.OutputDir = *outputDir
	}
	if fs.Changed("sources") {
		opts.Sources = *sources
	}
	if fs.Changed("source-exclude") {
		opts.SourceFilter.Exclude = *sourceExclude
	}
	if fs.Changed("max-rank") {
		opts.Filter.MaxRank = *maxRank
	}
	if fs.Changed("max-priority") {
		opts.Filter.MaxPriority = *maxPriority
	}
	if fs.Changed("include") {
		opts.Filter.Include = *include
	}
	if fs.Changed("exclude") {
		opts.Filter.Exclude = *exclude
	}
	if fs.Changed("detector-version") {
		opts.DetectorVersion = *detectorVersion
	}
	if fs.Changed("workers") {
		opts.Workers = *workers
	}
	if err := opts.Filter.Validate(); err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid bug filter",
			err.Error(),
			"Patterns use shell glob syntax, e.g. NP_* or SE_BAD_FIELD",
		), globals.JSON)
	}
	if err := opts.SourceFilter.Validate(); err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid source exclusion",
			err.Error(),
			"Patterns use glob syntax with ** for any depth, e.g. **/test/**",
		), globals.JSON)
	}

	res, err := buildFindings(ctx, opts, NewProgressConfig(globals), logger)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if *toStdout {
		if outFormat == output.FormatJSON {
			err = output.JSONTo(os.Stdout, res)
		} else {
			err = findings.WriteYAML(os.Stdout, res.Findings)
		}
		if err != nil {
			errors.FatalError(errors.NewInternalError("Cannot write findings", err.Error(), "", err), globals.JSON)
		}
	} else {
		if err := findings.WriteFiles(opts.OutputDir, res.Findings, res.Run); err != nil {
			errors.FatalError(errors.FromFileError("Cannot write findings", opts.OutputDir, err, errors.NewInternalError), globals.JSON)
		}
		if globals.JSON {
			if err := output.JSONTo(os.Stdout, res); err != nil {
				errors.FatalError(errors.NewInternalError("Cannot write findings", err.Error(), "", err), true)
			}
		} else if !globals.Quiet {
			printFindingsSummary(opts, res)
		}
	}

	if *metricsFile != "" {
		if err := findings.WriteMetricsFile(*metricsFile); err != nil {
			errors.FatalError(errors.FromFileError("Cannot write metrics", *metricsFile, err, errors.NewInternalError), globals.JSON)
		}
	}
}

func findingsOptionsFrom(info *bootstrap.ProjectInfo) findingsOptions {
	return findingsOptions{
		Report:          info.ReportPath(),
		OutputDir:       info.OutputPath(),
		Sources:         info.SourcePaths(),
		SourceFilter:    info.SourceFilter(),
		Filter:          info.Config.ReportFilter(),
		DetectorVersion: info.Config.DetectorVersion,
		Workers:         info.Config.Workers,
	}
}

// buildFindings reads and converts the report. Errors are UserErrors.
func buildFindings(ctx context.Context, opts findingsOptions, progress ProgressConfig, logger *slog.Logger) (*findingsResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	rep, err := report.NewReader(logger).ReadFile(ctx, opts.Report)
	if err != nil {
		return nil, reportError(opts.Report, err)
	}

	kept := opts.Filter.Apply(rep.Bugs)
	fs := findings.FromBugs(kept)
	logger.Info("findings.convert.done",
		"report", opts.Report,
		"bugs", len(rep.Bugs),
		"kept", len(kept),
		"findings", len(fs),
	)

	res := &findingsResult{Findings: fs, Bugs: len(rep.Bugs)}
	if len(opts.Sources) > 0 {
		index, skipped, err := indexSources(ctx, opts.Sources, opts.SourceFilter, opts.Workers, progress, logger)
		if err != nil {
			return nil, err
		}
		res.Skipped = skipped
		res.Verified = verifyFindings(res.Findings, index)
		logger.Info("findings.verify.done", "verified", res.Verified, "findings", len(fs))
	}

	version := opts.DetectorVersion
	if version == "" && rep.Version != "" {
		version = "spotbugs-" + rep.Version
	}
	res.Run = findings.NewRunInfo(version, time.Since(start), res.Findings)
	return res, nil
}

func reportError(path string, err error) *errors.UserError {
	switch {
	case stderrors.Is(err, report.ErrTooLarge):
		return errors.NewReportError(
			"Report too large",
			err.Error(),
			"Raise SPOTBENCH_MAX_REPORT_BYTES or split the analysis",
			err,
		)
	case stderrors.Is(err, context.Canceled):
		return errors.NewInternalError("Interrupted", "The run was cancelled", "", err)
	default:
		return errors.FromFileError("Cannot read report", path, err, func(msg, cause, fix string, err error) *errors.UserError {
			return errors.NewReportError(msg, cause, "Check that the file is a SpotBugs XML report (spotbugs -xml:withMessages)", err)
		})
	}
}

// verifyFindings sets Verified on every finding and returns how many were
// found in index.
func verifyFindings(fs []findings.Finding, index *javasrc.Index) int {
	n := 0
	for i := range fs {
		_, ok := index.Lookup(fs[i].File, fs[i].Method)
		fs[i].Verified = &ok
		if ok {
			n++
		}
	}
	return n
}

func printFindingsSummary(opts findingsOptions, res *findingsResult) {
	ui.Header("Findings")
	fmt.Fprintf(ui.Out, "  %s %s\n", ui.Label("Report:"), opts.Report)
	fmt.Fprintf(ui.Out, "  %s %s bugs, %s findings\n", ui.Label("Converted:"), ui.CountText(res.Bugs), ui.CountText(len(res.Findings)))
	if len(opts.Sources) > 0 {
		fmt.Fprintf(ui.Out, "  %s %s of %s %s\n", ui.Label("Verified:"), ui.CountText(res.Verified), ui.CountText(len(res.Findings)), ui.Mark(res.Verified == len(res.Findings)))
	}
	fmt.Fprintf(ui.Out, "  %s %s\n", ui.Label("Runtime:"), ui.DimText(res.Run.Runtime.Round(time.Millisecond).String()))
	warnSkipped(res.Skipped, opts.SourceFilter.MaxFileBytes)
	ui.Successf("Wrote %s and %s to %s", findings.FindingsFile, findings.RunFile, opts.OutputDir)
}
