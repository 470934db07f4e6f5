// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultMaxReportBytes is the largest analysis report read by default.
	DefaultMaxReportBytes int64 = 256 << 20 // 256 MiB

	// MaxDescriptorBytes bounds descriptors accepted on the convert command line.
	MaxDescriptorBytes = 64 << 10 // 64 KiB

	// MaxSourceBytes is the largest Java file parsed when verifying findings.
	// Larger files are usually generated and are skipped.
	MaxSourceBytes int64 = 4 << 20 // 4 MiB

	maxReportEnv = "SPOTBENCH_MAX_REPORT_BYTES"
)

// MaxReportBytes returns the effective size limit for analysis reports.
// Controlled via env SPOTBENCH_MAX_REPORT_BYTES; falls back to DefaultMaxReportBytes.
func MaxReportBytes() int64 {
	if v := os.Getenv(maxReportEnv); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxReportBytes
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateReportSize checks a report's size against MaxReportBytes.
func ValidateReportSize(size int64) *ValidationResult {
	if limit := MaxReportBytes(); size > limit {
		return &ValidationResult{
			OK:      false,
			Message: fmt.Sprintf("report is %d bytes, limit is %d (set %s to raise it)", size, limit, maxReportEnv),
		}
	}
	return &ValidationResult{OK: true}
}

// ValidateDescriptor checks a descriptor supplied by the user.
func ValidateDescriptor(desc string) *ValidationResult {
	if len(desc) > MaxDescriptorBytes {
		return &ValidationResult{
			OK:      false,
			Message: "descriptor exceeds size limit",
		}
	}
	return &ValidationResult{OK: true}
}
