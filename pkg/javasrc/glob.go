// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import (
	"fmt"
	"path"
	"strings"
)

const anySegments = "**"

// matchGlob reports whether the slash-separated path rel matches pattern.
//
// "**" matches any number of whole segments. Other segments use path.Match
// syntax, and "[!...]" is accepted as a negated class. A pattern without a
// leading "/" may match at any depth; a leading "/" anchors it to the root.
func matchGlob(rel, pattern string) bool {
	if pattern == "" {
		return false
	}
	anchored := strings.HasPrefix(pattern, "/")
	pat := segments(strings.TrimPrefix(pattern, "/"))
	segs := segments(rel)
	if anchored {
		return matchSegments(segs, pat)
	}
	for i := 0; i <= len(segs); i++ {
		if matchSegments(segs[i:], pat) {
			return true
		}
	}
	return false
}

func matchSegments(segs, pat []string) bool {
	for len(pat) > 0 {
		if pat[0] == anySegments {
			rest := pat[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, _ := path.Match(segmentPattern(pat[0]), segs[0]); !ok {
			return false
		}
		segs, pat = segs[1:], pat[1:]
	}
	return len(segs) == 0
}

// validGlob returns an error for patterns path.Match rejects.
func validGlob(pattern string) error {
	for _, seg := range segments(strings.TrimPrefix(pattern, "/")) {
		if seg == anySegments {
			continue
		}
		if _, err := path.Match(segmentPattern(seg), ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func segmentPattern(seg string) string {
	return strings.ReplaceAll(seg, "[!", "[^")
}

func segments(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
