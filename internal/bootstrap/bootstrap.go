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

package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kraklabs/spotbench/internal/config"
	"github.com/kraklabs/spotbench/internal/contract"
	"github.com/kraklabs/spotbench/pkg/javasrc"
)

// ErrAlreadyInitialized is returned by InitProject when the configuration
// file exists and Force is not set.
var ErrAlreadyInitialized = errors.New("project already initialized")

// ProjectConfig holds configuration for initializing a project.
type ProjectConfig struct {
	// Dir is the project root. Defaults to the working directory.
	Dir string

	// ProjectID is the logical project identifier.
	// Defaults to the base name of Dir.
	ProjectID string

	// Report is the SpotBugs XML report path, relative to Dir.
	// Defaults to "spotbugs.xml".
	Report string

	// OutputDir receives the findings files, relative to Dir.
	// Defaults to "findings".
	OutputDir string

	// Sources are Java source roots, relative to Dir.
	Sources []string

	// Force overwrites an existing configuration file.
	Force bool
}

// ProjectInfo holds information about an initialized or opened project.
type ProjectInfo struct {
	Dir        string
	ConfigPath string
	Config     *config.Config
}

// Resolve returns p relative to the project root unless it is absolute.
func (p *ProjectInfo) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Dir, path)
}

// ReportPath returns the absolute path of the configured report.
func (p *ProjectInfo) ReportPath() string {
	return p.Resolve(p.Config.Report)
}

// OutputPath returns the absolute path of the configured output directory.
func (p *ProjectInfo) OutputPath() string {
	return p.Resolve(p.Config.OutputDir)
}

// SourcePaths returns the configured source roots resolved against Dir.
func (p *ProjectInfo) SourcePaths() []string {
	out := make([]string, 0, len(p.Config.Sources))
	for _, s := range p.Config.Sources {
		out = append(out, p.Resolve(s))
	}
	return out
}

// SourceFilter returns the configured source exclusions with the default
// per-file size limit.
func (p *ProjectInfo) SourceFilter() javasrc.SourceFilter {
	return javasrc.SourceFilter{
		Exclude:      p.Config.SourceExclude,
		MaxFileBytes: contract.MaxSourceBytes,
	}
}

// InitProject writes .spotbench.yaml into the project root and creates the
// output directory.
//
// Calling it on an initialized project returns ErrAlreadyInitialized unless
// config.Force is set. The output directory is created either way, so
// re-running with Force is safe.
func InitProject(cfg ProjectConfig, logger *slog.Logger) (*ProjectInfo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir, err := projectDir(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = filepath.Base(dir)
	}

	conf := config.Default(cfg.ProjectID)
	if cfg.Report != "" {
		conf.Report = cfg.Report
	}
	if cfg.OutputDir != "" {
		conf.OutputDir = cfg.OutputDir
	}
	conf.Sources = cfg.Sources
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config: %w", err)
	}

	path := config.Path(dir)
	logger.Info("bootstrap.project.init.start",
		"project_id", cfg.ProjectID,
		"dir", dir,
		"force", cfg.Force,
	)

	if _, err := os.Stat(path); err == nil && !cfg.Force {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyInitialized, path)
	}

	if err := config.Save(path, conf); err != nil {
		return nil, err
	}

	info := &ProjectInfo{Dir: dir, ConfigPath: path, Config: conf}
	if err := os.MkdirAll(info.OutputPath(), 0o750); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	logger.Info("bootstrap.project.init.success",
		"project_id", cfg.ProjectID,
		"config", path,
		"output_dir", info.OutputPath(),
	)
	return info, nil
}

// OpenProject loads the project configuration. An empty configPath looks
// for .spotbench.yaml in the working directory and falls back to defaults;
// relative paths in the configuration resolve against the file's directory.
func OpenProject(configPath string, logger *slog.Logger) (*ProjectInfo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dir, err := projectDir("")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		configPath = abs
		dir = filepath.Dir(abs)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = config.Path(dir)
	}

	logger.Debug("bootstrap.project.open",
		"project_id", conf.ProjectID,
		"config", configPath,
	)
	return &ProjectInfo{Dir: dir, ConfigPath: configPath, Config: conf}, nil
}

func projectDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir: %w", err)
	}
	return abs, nil
}
