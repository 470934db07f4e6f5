// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/kraklabs/spotbench/pkg/javasrc"
)

const parsingDescription = "Parsing sources"

// ProgressConfig controls progress output on stderr.
type ProgressConfig struct {
	// Enabled is false with -q, --json, or when stderr is not a terminal.
	Enabled bool
	Writer  io.Writer
	NoColor bool
}

// NewProgressConfig enables progress only for interactive, non-quiet runs.
func NewProgressConfig(globals GlobalFlags) ProgressConfig {
	return ProgressConfig{
		Enabled: !globals.Quiet && isatty.IsTerminal(os.Stderr.Fd()),
		Writer:  os.Stderr,
		NoColor: globals.NoColor,
	}
}

// FileBar returns a bar counting files, or nil when progress is disabled.
func (c ProgressConfig) FileBar(total int, description string) *progressbar.ProgressBar {
	if !c.Enabled {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(c.Writer),
		progressbar.OptionEnableColorCodes(!c.NoColor),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerPadding: "-",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}

// sourceProgress returns a per-file callback for javasrc.Indexer and a
// finish func for the bar. The callback is nil when progress is disabled;
// finish is always safe to call.
func sourceProgress(cfg ProgressConfig, total int) (onFile func(javasrc.SourceFile), finish func()) {
	bar := cfg.FileBar(total, parsingDescription)
	if bar == nil {
		return nil, func() {}
	}
	return func(javasrc.SourceFile) { _ = bar.Add(1) }, func() { _ = bar.Finish() }
}
