// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"bytes"
	"strings"
	"testing"
)

type convertResult struct {
	Descriptor string `json:"descriptor" yaml:"descriptor"`
	Params     string `json:"params" yaml:"params"`
	OK         bool   `json:"ok" yaml:"ok"`
}

// TestJSONTo verifies pretty-printed output.
func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONTo(&buf, convertResult{Descriptor: "(I)V", Params: "int", OK: true}); err != nil {
		t.Fatalf("JSONTo failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "  \"descriptor\": \"(I)V\"") {
		t.Errorf("expected 2-space indentation, got: %s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("expected trailing newline, got: %q", out)
	}
}

// TestJSONCompactTo verifies single-line output.
func TestJSONCompactTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONCompactTo(&buf, convertResult{Descriptor: "()V", OK: true}); err != nil {
		t.Fatalf("JSONCompactTo failed: %v", err)
	}

	want := `{"descriptor":"()V","params":"","ok":true}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("JSONCompactTo() = %q, want %q", got, want)
	}
}

// TestJSONTo_Unencodable verifies encoding errors are reported.
func TestJSONTo_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONTo(&buf, map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected error for channel value")
	}
}

// TestParseFormat verifies accepted spellings.
func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestWrite verifies dispatch on format.
func TestWrite(t *testing.T) {
	data := convertResult{Descriptor: "([I)V", Params: "int[]", OK: true}

	var j bytes.Buffer
	if err := Write(&j, FormatJSON, data); err != nil {
		t.Fatalf("Write(json): %v", err)
	}
	if !strings.Contains(j.String(), `"params": "int[]"`) {
		t.Errorf("json output: %s", j.String())
	}

	var y bytes.Buffer
	if err := Write(&y, FormatYAML, data); err != nil {
		t.Fatalf("Write(yaml): %v", err)
	}
	if !strings.Contains(y.String(), "params: int[]\n") {
		t.Errorf("yaml output: %s", y.String())
	}

	if err := Write(&y, FormatText, data); err == nil {
		t.Error("Write(text) should fail")
	}
}
