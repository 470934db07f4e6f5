// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/spotbench/internal/errors"
	spottest "github.com/kraklabs/spotbench/internal/testing"
	"github.com/kraklabs/spotbench/pkg/findings"
	"github.com/kraklabs/spotbench/pkg/report"
)

var fixtureBugs = []spottest.TestBug{
	{
		Type: "SE_BAD_FIELD", Category: "BAD_PRACTICE", Priority: 2, Rank: 19,
		Message: "Non-serializable field", Class: "com.acme.Model",
		SourcePath: "com/acme/Model.java", StartLine: 4,
	},
	{
		Type: "NP_NULL_ON_SOME_PATH", Category: "CORRECTNESS", Priority: 1, Rank: 7,
		Message: "Possible null pointer dereference", Class: "com.acme.Parser",
		Method: "parse", Signature: "([SLorg/test/govind/SType;)V",
		SourcePath: "com/acme/Parser.java", StartLine: 6,
	},
	{
		Type: "DM_DEFAULT_ENCODING", Category: "I18N", Priority: 3, Rank: 19,
		Message: "Reliance on default encoding", Class: "com.acme.Parser",
		Method: "<clinit>", Signature: "()V",
		SourcePath: "com/acme/Parser.java", StartLine: 3,
	},
	{
		Type: "URF_UNREAD_FIELD", Category: "PERFORMANCE", Priority: 2, Rank: 18,
		Message: "Unread field", Class: "com.acme.Parser",
		Method: "ghost", Signature: "(I)V",
		SourcePath: "com/acme/Parser.java", StartLine: 9,
	},
}

const fixtureParser = `package com.acme;

import org.test.govind.SType;

public class Parser {
    void parse(short[] data, SType type) {}
}
`

func testOptions(t *testing.T) findingsOptions {
	t.Helper()
	return findingsOptions{
		Report:    spottest.WriteReport(t, fixtureBugs...),
		OutputDir: filepath.Join(t.TempDir(), "findings"),
		Filter:    report.Filter{MaxRank: 20, MaxPriority: 3},
	}
}

func TestBuildFindings(t *testing.T) {
	opts := testOptions(t)

	res, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Bugs)
	require.Len(t, res.Findings, 3, "class-level bug is dropped")
	assert.Equal(t, "parse(short[], SType)", res.Findings[0].Method)
	assert.Equal(t, 7, res.Findings[0].Rank)
	assert.Equal(t, "ghost(int)", res.Findings[1].Method)
	assert.Equal(t, "<init>()", res.Findings[2].Method, "static initializer is reported as constructor")
	assert.Nil(t, res.Findings[0].Verified, "no sources, no verification")

	assert.Equal(t, "spotbugs-4.8.3", res.Run.DetectorVersion)
	assert.Equal(t, 3, res.Run.NumberOfFindings)
}

func TestBuildFindings_Filtered(t *testing.T) {
	opts := testOptions(t)
	opts.Filter = report.Filter{MaxRank: 18, MaxPriority: 3, Exclude: []string{"URF_*"}}
	opts.DetectorVersion = "spotbugs-custom"

	res, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
	require.NoError(t, err)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, "NP_NULL_ON_SOME_PATH", res.Findings[0].Type)
	assert.Equal(t, "spotbugs-custom", res.Run.DetectorVersion)
}

func TestBuildFindings_Verified(t *testing.T) {
	opts := testOptions(t)
	root := t.TempDir()
	spottest.WriteJavaSource(t, root, "com/acme/Parser.java", fixtureParser)
	opts.Sources = []string{root}

	res, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Verified)
	require.NotNil(t, res.Findings[0].Verified)
	assert.True(t, *res.Findings[0].Verified)
	require.NotNil(t, res.Findings[1].Verified)
	assert.False(t, *res.Findings[1].Verified)
}

func TestPrintFindingsSummary(t *testing.T) {
	opts := testOptions(t)
	root := t.TempDir()
	spottest.WriteJavaSource(t, root, "com/acme/Parser.java", fixtureParser)
	opts.Sources = []string{root}

	res, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
	require.NoError(t, err)

	buf := captureUI(t)
	printFindingsSummary(opts, res)
	out := buf.String()
	assert.Contains(t, out, "Converted: 4 bugs, 3 findings\n")
	assert.Contains(t, out, "Verified: 1 of 3 ✗\n")
	assert.NotContains(t, out, "⚠")
	assert.Contains(t, out, "✓ Wrote findings.yml and run.yml to "+opts.OutputDir)

	res.Verified = len(res.Findings)
	res.Skipped.TooLarge = 2
	opts.SourceFilter.MaxFileBytes = 4096
	buf.Reset()
	printFindingsSummary(opts, res)
	out = buf.String()
	assert.Contains(t, out, "Verified: 3 of 3 ✓\n")
	assert.Contains(t, out, "⚠ Skipped 2 source files larger than 4096 bytes\n")
}

func TestBuildFindings_Errors(t *testing.T) {
	t.Run("missing report", func(t *testing.T) {
		opts := testOptions(t)
		opts.Report = filepath.Join(t.TempDir(), "missing.xml")

		_, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
		var ue *errors.UserError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, errors.ExitNotFound, ue.ExitCode)
	})

	t.Run("not a report", func(t *testing.T) {
		opts := testOptions(t)
		require.NoError(t, os.WriteFile(opts.Report, []byte("<html></html>"), 0o644))

		_, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
		var ue *errors.UserError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, errors.ExitReport, ue.ExitCode)
	})

	t.Run("too large", func(t *testing.T) {
		t.Setenv("SPOTBENCH_MAX_REPORT_BYTES", "16")
		opts := testOptions(t)

		_, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
		var ue *errors.UserError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, errors.ExitReport, ue.ExitCode)
		assert.Contains(t, ue.Fix, "SPOTBENCH_MAX_REPORT_BYTES")
	})

	t.Run("missing source root", func(t *testing.T) {
		opts := testOptions(t)
		opts.Sources = []string{filepath.Join(t.TempDir(), "nope")}

		_, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
		var ue *errors.UserError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, errors.ExitNotFound, ue.ExitCode)
	})
}

func TestBuildFindings_WritesFiles(t *testing.T) {
	opts := testOptions(t)
	res, err := buildFindings(context.Background(), opts, ProgressConfig{}, nil)
	require.NoError(t, err)

	require.NoError(t, findings.WriteFiles(opts.OutputDir, res.Findings, res.Run))

	f, err := os.Open(filepath.Join(opts.OutputDir, findings.FindingsFile))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := findings.ReadYAML(f)
	require.NoError(t, err)
	assert.Equal(t, res.Findings, got)
}
