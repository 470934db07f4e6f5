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

// Package config loads and saves the .spotbench.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/spotbench/pkg/javasrc"
	"github.com/kraklabs/spotbench/pkg/report"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".spotbench.yaml"

// CurrentVersion is written to new configuration files.
const CurrentVersion = "1"

// Config is the project configuration.
type Config struct {
	Version   string `yaml:"version"`
	ProjectID string `yaml:"project_id"`

	// Report is the SpotBugs XML report to convert.
	Report string `yaml:"report"`

	// OutputDir receives findings.yml and run.yml.
	OutputDir string `yaml:"output_dir"`

	// Sources are Java source roots used to verify findings. Optional.
	Sources []string `yaml:"sources,omitempty"`

	// SourceExclude holds glob patterns of source paths to skip, relative
	// to each source root (e.g. "**/test/**").
	SourceExclude []string `yaml:"source_exclude,omitempty"`

	// DetectorVersion is recorded in run.yml.
	DetectorVersion string `yaml:"detector_version"`

	// Workers bounds parallel source parsing; 0 uses all CPUs.
	Workers int `yaml:"workers,omitempty"`

	Filter FilterConfig `yaml:"filter"`
}

// FilterConfig mirrors report.Filter in the configuration file.
type FilterConfig struct {
	MaxRank     int      `yaml:"max_rank"`
	MaxPriority int      `yaml:"max_priority"`
	Include     []string `yaml:"include,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
}

// Default returns the configuration used when no file exists.
// Low-priority bugs are kept, matching the analyzer's most permissive threshold.
func Default(projectID string) *Config {
	return &Config{
		Version:         CurrentVersion,
		ProjectID:       projectID,
		Report:          "spotbugs.xml",
		OutputDir:       "findings",
		DetectorVersion: "spotbugs",
		Filter: FilterConfig{
			MaxRank:     20,
			MaxPriority: 3,
		},
	}
}

// Path returns the configuration path for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the configuration at path. An empty path means FileName in the
// working directory, and a missing file there yields Default. A missing file
// at an explicit path is an error.
//
// Environment variables in the file (${VAR}) are expanded before decoding.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = Path(cwd)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(filepath.Base(filepath.Dir(path))), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default("")
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and filter patterns.
func (c *Config) Validate() error {
	if c.Filter.MaxRank < 0 || c.Filter.MaxRank > 20 {
		return fmt.Errorf("filter.max_rank must be between 0 and 20, got %d", c.Filter.MaxRank)
	}
	if c.Filter.MaxPriority < 0 || c.Filter.MaxPriority > 3 {
		return fmt.Errorf("filter.max_priority must be between 0 and 3, got %d", c.Filter.MaxPriority)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if err := (javasrc.SourceFilter{Exclude: c.SourceExclude}).Validate(); err != nil {
		return fmt.Errorf("source_exclude: %w", err)
	}
	return c.ReportFilter().Validate()
}

// ReportFilter converts the filter section for use with report.Filter.
func (c *Config) ReportFilter() report.Filter {
	return report.Filter{
		MaxRank:     c.Filter.MaxRank,
		MaxPriority: c.Filter.MaxPriority,
		Include:     c.Filter.Include,
		Exclude:     c.Filter.Exclude,
	}
}
