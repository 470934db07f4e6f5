// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides machine-readable output for spotbench commands.
//
// Commands pick a Format from the --format flag and write results with
// Write:
//
//	f, err := output.ParseFormat(*format)
//	if err != nil {
//	    errors.FatalError(errors.NewInputError("Unknown format", err.Error(), "Use text, json or yaml"), false)
//	}
//	if err := output.Write(os.Stdout, f, result); err != nil {
//	    errors.FatalError(err, f == output.FormatJSON)
//	}
//
// JSON is pretty-printed with 2-space indentation; JSONCompactTo writes one
// value per line for streaming (e.g. convert reading descriptors from stdin).
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONTo writes data as pretty-printed JSON to w.
func JSONTo(w io.Writer, data any) error {
	return encodeJSON(w, data, "  ")
}

// JSONCompactTo writes data as a single line of JSON to w.
func JSONCompactTo(w io.Writer, data any) error {
	return encodeJSON(w, data, "")
}

func encodeJSON(w io.Writer, data any, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
