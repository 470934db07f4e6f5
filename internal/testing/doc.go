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

// Package testing provides fixture builders for spotbench tests.
//
// # Quick Start
//
// Write a SpotBugs report containing the bugs under test:
//
//	func TestMyFeature(t *testing.T) {
//	    path := testing.WriteReport(t, testing.TestBug{
//	        Type: "NP_NULL_ON_SOME_PATH", Rank: 7,
//	        Class: "com.acme.Parser", Method: "parse", Signature: "(I)V",
//	        SourcePath: "com/acme/Parser.java", StartLine: 12,
//	    })
//
//	    rep, err := report.NewReader(nil).ReadFile(ctx, path)
//	    require.NoError(t, err)
//	    require.Len(t, rep.Bugs, 1)
//	}
//
// # Fixtures
//
//   - ReportXML: render a BugCollection document as a string
//   - WriteReport: write a BugCollection document to a temp file
//   - WriteJavaSource: write a Java file into a source tree
//
// Fixtures are written under t.TempDir() and removed automatically.
package testing
