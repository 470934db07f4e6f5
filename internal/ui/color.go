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

// Package ui provides terminal output helpers for the spotbench CLI.
//
// Colors respect the --no-color flag and the NO_COLOR environment variable,
// and are disabled automatically when stdout is not a TTY.
//
// Color usage:
//   - Red: errors, unverified findings
//   - Yellow: warnings, passed-through signatures
//   - Green: success, verified findings
//   - Cyan: info and counts
//   - Bold: headers and labels
//   - Dim: paths and raw descriptors
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// Out is where the message helpers write. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// InitColors configures global color output. Call it right after parsing
// flags so every helper honors --no-color.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Successf prints a formatted green message with a checkmark prefix.
func Successf(format string, args ...any) {
	_, _ = Green.Fprintf(Out, "✓ "+format+"\n", args...)
}

// Warningf prints a formatted yellow message with a warning prefix.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(Out, "⚠ "+format+"\n", args...)
}

// Info prints a cyan message with an info prefix.
func Info(msg string) {
	_, _ = Cyan.Fprintln(Out, "ℹ "+msg)
}

// Header prints a bold header with an underline separator.
//
//	Findings
//	========
func Header(text string) {
	_, _ = Bold.Fprintln(Out, text)
	fmt.Fprintln(Out, strings.Repeat("=", len(text)))
}

// Label returns a bold-formatted label string for inline use.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan-formatted count.
func CountText(count int) string {
	return Cyan.Sprint(count)
}

// Mark returns a green check when ok and a red cross otherwise.
func Mark(ok bool) string {
	if ok {
		return Green.Sprint("✓")
	}
	return Red.Sprint("✗")
}
