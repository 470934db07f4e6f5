// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/spotbench/pkg/javasrc"
)

func TestNewProgressConfig(t *testing.T) {
	// stderr is not a terminal under go test, so progress is always off.
	for _, g := range []GlobalFlags{
		{},
		{Quiet: true},
		{JSON: true, Quiet: true},
		{Verbose: 2},
	} {
		cfg := NewProgressConfig(g)
		assert.False(t, cfg.Enabled, "%+v", g)
	}

	assert.True(t, NewProgressConfig(GlobalFlags{NoColor: true}).NoColor)
}

func TestFileBar(t *testing.T) {
	assert.Nil(t, ProgressConfig{}.FileBar(10, parsingDescription))

	var buf bytes.Buffer
	bar := ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}.FileBar(0, parsingDescription)
	require.NotNil(t, bar, "zero total is valid")
	require.NoError(t, bar.Finish())
}

func TestSourceProgress(t *testing.T) {
	onFile, finish := sourceProgress(ProgressConfig{}, 3)
	assert.Nil(t, onFile)
	finish()

	var buf bytes.Buffer
	onFile, finish = sourceProgress(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, 2)
	require.NotNil(t, onFile)
	onFile(javasrc.SourceFile{Rel: "com/acme/A.java"})
	onFile(javasrc.SourceFile{Rel: "com/acme/B.java"})
	finish()
}
