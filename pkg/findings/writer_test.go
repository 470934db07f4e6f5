// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package findings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindings() []Finding {
	verified := true
	return []Finding{
		{File: "com/acme/Parser.java", Method: "parse(short[], SType)", Rank: 7, Desc: "Possible null pointer dereference", Type: "NP_NULL_ON_SOME_PATH", StartLine: 10, Verified: &verified},
		{File: "com/acme/Reader.java", Method: "read(byte[])", Rank: 19, Desc: "Found reliance on default encoding", Type: "DM_DEFAULT_ENCODING", StartLine: 42},
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleFindings()))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "---\n"), "documents are separated by ---")
	assert.Contains(t, out, "file: com/acme/Parser.java\n")
	assert.Contains(t, out, "method: parse(short[], SType)\n")
	assert.Contains(t, out, "startline: 42\n")
	assert.Contains(t, out, "verified: true\n")
	assert.Equal(t, 1, strings.Count(out, "verified:"), "unverified findings omit the key")
}

func TestReadYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleFindings()
	require.NoError(t, WriteYAML(&buf, want))

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadYAML_Invalid(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("file: [unclosed\n"))
	assert.Error(t, err)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fs := sampleFindings()
	info := NewRunInfo("spotbugs-4.8", 1500*time.Millisecond, fs)

	require.NoError(t, WriteFiles(dir, fs, info))

	data, err := os.ReadFile(filepath.Join(dir, FindingsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "read(byte[])")

	run, err := os.ReadFile(filepath.Join(dir, RunFile))
	require.NoError(t, err)
	assert.Contains(t, string(run), "detector-version: spotbugs-4.8\n")
	assert.Contains(t, string(run), "runtime: 1500\n")
	assert.Contains(t, string(run), "number_of_findings: 2\n")
}

func TestWriteMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spotbench.prom")
	Format(Method{Name: "run", Signature: "(I)V"})

	require.NoError(t, WriteMetricsFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spotbench_descriptors_converted_total")
}
