// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report reads SpotBugs and FindBugs XML reports.
//
// The reader streams BugInstance elements out of a BugCollection document
// and converts each into a findings.Bug, keeping the primary method, the
// primary source line, the rank, the priority and the message:
//
//	r := report.NewReader(logger)
//	rep, err := r.ReadFile(ctx, "spotbugs.xml")
//	if err != nil {
//	    return err
//	}
//	bugs := report.Filter{MaxRank: 14}.Apply(rep.Bugs)
//
// Reports are produced with "spotbugs -textui -xml:withMessages". Reports
// without messages are accepted; the bug type is used as description then.
package report
