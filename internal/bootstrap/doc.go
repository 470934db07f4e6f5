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

// Package bootstrap handles spotbench project initialization and setup.
//
// A project is a directory holding .spotbench.yaml. InitProject writes the
// file with defaults and creates the output directory; OpenProject loads it
// and resolves the paths it names against the project root.
//
// # Initialization Workflow
//
//	info, err := bootstrap.InitProject(bootstrap.ProjectConfig{
//	    Dir:     ".",
//	    Report:  "target/spotbugsXml.xml",
//	    Sources: []string{"src/main/java"},
//	}, logger)
//	if err != nil {
//	    return err
//	}
//
// Subsequent commands open the project:
//
//	info, err := bootstrap.OpenProject("", logger)
//	if err != nil {
//	    return err
//	}
//	rep, err := report.NewReader(logger).ReadFile(ctx, info.ReportPath())
//
// # Idempotency
//
// InitProject refuses to overwrite an existing configuration unless Force is
// set. OpenProject never writes.
package bootstrap
