// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"path"

	"github.com/kraklabs/spotbench/pkg/findings"
)

// Filter selects which bugs become findings. The zero value keeps everything.
type Filter struct {
	// MaxRank drops bugs ranked above it (1 is the most severe, 20 the least).
	// Zero disables the check.
	MaxRank int

	// MaxPriority drops bugs with a numerically higher priority
	// (1 high, 2 normal, 3 low). Zero disables the check.
	MaxPriority int

	// Include, when non-empty, keeps only bugs whose type matches one of the
	// glob patterns (e.g. "NP_*").
	Include []string

	// Exclude drops bugs whose type matches one of the glob patterns.
	Exclude []string
}

// Validate reports malformed glob patterns.
func (f Filter) Validate() error {
	for _, patterns := range [][]string{f.Include, f.Exclude} {
		for _, p := range patterns {
			if _, err := path.Match(p, ""); err != nil {
				return fmt.Errorf("invalid bug pattern %q: %w", p, err)
			}
		}
	}
	return nil
}

// Keep reports whether b passes the filter.
func (f Filter) Keep(b findings.Bug) bool {
	if f.MaxRank > 0 && b.Rank > f.MaxRank {
		return false
	}
	if f.MaxPriority > 0 && b.Priority > f.MaxPriority {
		return false
	}
	if len(f.Include) > 0 && !matchAny(f.Include, b.Type) {
		return false
	}
	return !matchAny(f.Exclude, b.Type)
}

// Apply returns the bugs that pass the filter, in input order.
func (f Filter) Apply(bugs []findings.Bug) []findings.Bug {
	out := make([]findings.Bug, 0, len(bugs))
	for _, b := range bugs {
		if f.Keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
