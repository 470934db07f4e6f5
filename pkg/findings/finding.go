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

package findings

import (
	"sort"
	"strings"

	"github.com/kraklabs/spotbench/pkg/descriptor"
)

const (
	staticInitializer = "<clinit>"
	constructor       = "<init>"
)

// Method identifies the primary method of a bug as the analyzer reports it.
type Method struct {
	ClassName string
	Name      string
	// Signature is the JVM method descriptor, e.g. "(I)V".
	Signature string
}

// Bug is a single analyzer result.
type Bug struct {
	Type     string
	Category string
	Rank     int
	Priority int
	Message  string

	SourcePath string
	StartLine  int

	// Method is nil when the bug is not attached to a method (e.g. class-level bugs).
	Method *Method
}

// Finding is a bug expressed in benchmark notation.
type Finding struct {
	File      string `yaml:"file" json:"file"`
	Method    string `yaml:"method" json:"method"`
	Rank      int    `yaml:"rank" json:"rank"`
	Desc      string `yaml:"desc" json:"desc"`
	Type      string `yaml:"type" json:"type"`
	StartLine int    `yaml:"startline" json:"startline"`

	// Verified is set when the method was looked up in the project sources.
	Verified *bool `yaml:"verified,omitempty" json:"verified,omitempty"`
}

// MethodName maps analyzer method names to benchmark names.
// Static initializers are reported as constructors.
func MethodName(name string) string {
	if strings.Contains(name, staticInitializer) {
		return constructor
	}
	return name
}

// Format renders a method as name(params). When the signature is not a
// method descriptor the signature is returned unchanged.
func Format(m Method) string {
	params, err := descriptor.Parse(m.Signature)
	if err != nil {
		recordPassthrough()
		return m.Signature
	}
	recordConverted(len(params))
	return MethodName(m.Name) + "(" + descriptor.Join(params) + ")"
}

// FromBug converts a single bug. ok is false when the bug has no primary method.
func FromBug(b Bug) (Finding, bool) {
	if b.Method == nil {
		recordSkipped()
		return Finding{}, false
	}
	return Finding{
		File:      b.SourcePath,
		Method:    Format(*b.Method),
		Rank:      b.Rank,
		Desc:      b.Message,
		Type:      b.Type,
		StartLine: b.StartLine,
	}, true
}

// FromBugs converts bugs into findings ordered by ascending rank. Bugs with
// equal rank keep their input order; bugs without a primary method are dropped.
func FromBugs(bugs []Bug) []Finding {
	sorted := make([]Bug, len(bugs))
	copy(sorted, bugs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})

	out := make([]Finding, 0, len(sorted))
	for _, b := range sorted {
		if f, ok := FromBug(b); ok {
			out = append(out, f)
		}
	}
	recordEmitted(len(out))
	return out
}
