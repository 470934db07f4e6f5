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

package testing

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestBug describes one BugInstance to render into a report fixture.
type TestBug struct {
	Type     string
	Category string
	Priority int
	Rank     int
	Message  string

	// Class, Method and Signature describe the primary method.
	// An empty Method renders a class-level bug without a Method element.
	Class     string
	Method    string
	Signature string

	SourcePath string
	StartLine  int
}

// ReportXML renders a SpotBugs BugCollection document containing bugs.
//
// Example:
//
//	doc := testing.ReportXML("4.8.3", testing.TestBug{
//	    Type: "NP_NULL_ON_SOME_PATH", Rank: 7, Priority: 2,
//	    Class: "com.acme.Parser", Method: "parse", Signature: "(I)V",
//	    SourcePath: "com/acme/Parser.java", StartLine: 12,
//	})
func ReportXML(version string, bugs ...TestBug) string {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, "<BugCollection version=%q sequence=\"0\" timestamp=\"1700000000000\">\n", esc(version))
	b.WriteString("  <Project projectName=\"fixture\">\n    <Jar>/tmp/classes</Jar>\n  </Project>\n")

	for _, bug := range bugs {
		fmt.Fprintf(&b, "  <BugInstance type=%q priority=\"%d\" rank=\"%d\" category=%q>\n",
			esc(bug.Type), bug.Priority, bug.Rank, esc(bug.Category))
		if bug.Message != "" {
			fmt.Fprintf(&b, "    <LongMessage>%s</LongMessage>\n", esc(bug.Message))
		}
		fmt.Fprintf(&b, "    <Class classname=%q primary=\"true\">\n", esc(bug.Class))
		fmt.Fprintf(&b, "      <SourceLine classname=%q start=\"1\" end=\"200\" sourcepath=%q/>\n", esc(bug.Class), esc(bug.SourcePath))
		b.WriteString("    </Class>\n")
		if bug.Method != "" {
			fmt.Fprintf(&b, "    <Method classname=%q name=%q signature=%q isStatic=\"false\" primary=\"true\">\n",
				esc(bug.Class), esc(bug.Method), esc(bug.Signature))
			fmt.Fprintf(&b, "      <SourceLine classname=%q start=\"%d\" end=\"%d\" sourcepath=%q/>\n",
				esc(bug.Class), bug.StartLine, bug.StartLine+5, esc(bug.SourcePath))
			b.WriteString("    </Method>\n")
		}
		if bug.StartLine > 0 {
			fmt.Fprintf(&b, "    <SourceLine classname=%q primary=\"true\" start=\"%d\" end=\"%d\" sourcepath=%q/>\n",
				esc(bug.Class), bug.StartLine, bug.StartLine, esc(bug.SourcePath))
		}
		b.WriteString("  </BugInstance>\n")
	}

	b.WriteString("  <Errors errors=\"0\" missingClasses=\"0\"></Errors>\n")
	b.WriteString("  <FindBugsSummary total_classes=\"1\" total_bugs=\"0\"></FindBugsSummary>\n")
	b.WriteString("</BugCollection>\n")
	return b.String()
}

// WriteReport writes a report fixture into a temp dir and returns its path.
// The file is removed when the test finishes.
func WriteReport(t *testing.T, bugs ...TestBug) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "spotbugs.xml")
	if err := os.WriteFile(path, []byte(ReportXML("4.8.3", bugs...)), 0o644); err != nil {
		t.Fatalf("failed to write report fixture: %v", err)
	}
	return path
}

// WriteJavaSource writes src to root/relPath, creating parent directories,
// and returns the full path.
//
// Example:
//
//	root := t.TempDir()
//	testing.WriteJavaSource(t, root, "com/acme/Parser.java", "package com.acme; class Parser {}")
func WriteJavaSource(t *testing.T, root, relPath, src string) string {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("failed to create source dir: %v", err)
	}
	if err := os.WriteFile(full, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write java source: %v", err)
	}
	return full
}

// esc escapes s for use in XML text and attribute values. Quotes and control
// characters become entities, so ASCII input survives %q formatting unchanged.
func esc(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
