// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package findings

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RunInfo summarizes one detector run.
type RunInfo struct {
	DetectorVersion  string        `yaml:"detector-version" json:"detector_version"`
	Runtime          time.Duration `yaml:"-" json:"-"`
	RuntimeMillis    int64         `yaml:"runtime" json:"runtime_ms"`
	NumberOfFindings int           `yaml:"number_of_findings" json:"number_of_findings"`
}

// NewRunInfo builds the run summary for a set of findings.
func NewRunInfo(version string, runtime time.Duration, fs []Finding) RunInfo {
	return RunInfo{
		DetectorVersion:  version,
		Runtime:          runtime,
		RuntimeMillis:    runtime.Milliseconds(),
		NumberOfFindings: len(fs),
	}
}

// WriteYAML writes findings as a YAML stream with one document per finding.
func WriteYAML(w io.Writer, fs []Finding) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for i := range fs {
		if err := enc.Encode(&fs[i]); err != nil {
			return fmt.Errorf("encode finding %d: %w", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}
	return nil
}

// ReadYAML reads a findings stream written by WriteYAML.
func ReadYAML(r io.Reader) ([]Finding, error) {
	dec := yaml.NewDecoder(r)
	var out []Finding
	for {
		var f Finding
		err := dec.Decode(&f)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode finding %d: %w", len(out), err)
		}
		out = append(out, f)
	}
}

// WriteRunInfo writes the run summary as a single YAML document.
func WriteRunInfo(w io.Writer, info RunInfo) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("encode run info: %w", err)
	}
	return enc.Close()
}

// WriteFiles writes findings.yml and run.yml into dir, creating it if needed.
func WriteFiles(dir string, fs []Finding, info RunInfo) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, FindingsFile), func(w io.Writer) error {
		return WriteYAML(w, fs)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, RunFile), func(w io.Writer) error {
		return WriteRunInfo(w, info)
	})
}

// Output file names inside the findings directory.
const (
	FindingsFile = "findings.yml"
	RunFile      = "run.yml"
)

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
