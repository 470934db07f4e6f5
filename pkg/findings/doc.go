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

// Package findings turns static-analysis bugs into benchmark findings.
//
// A Bug is what the analyzer reports: a bug pattern, a rank, and the primary
// method as class name, method name and JVM descriptor. A Finding is what the
// benchmark consumes: a source file and a method written as
// name(paramType, ...).
//
//	bugs := []findings.Bug{{
//	    Type:       "NP_NULL_ON_SOME_PATH",
//	    Rank:       7,
//	    SourcePath: "com/acme/Parser.java",
//	    Method:     &findings.Method{Name: "parse", Signature: "(Ljava/lang/String;I)V"},
//	}}
//	out := findings.FromBugs(bugs)
//	// out[0].Method == "parse(String, int)"
//
// Findings are ordered by ascending rank (most severe first). Static
// initializers are reported as "<init>". When a signature is not a method
// descriptor the raw signature is kept as the method.
//
// # Output
//
// WriteYAML emits one YAML document per finding, the layout the benchmark
// reads back from findings files.
//
// # Metrics
//
// Formatting records Prometheus counters for converted, passed-through and
// zero-parameter descriptors. WriteMetricsFile dumps the default registry in
// the text exposition format.
package findings
