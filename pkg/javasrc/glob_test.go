// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import (
	"testing"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"exact match", "Parser.java", "Parser.java", true},
		{"exact no match", "Parser.java", "Lexer.java", false},

		{"star suffix", "ParserTest.java", "*Test.java", true},
		{"star prefix", "Generated_Lexer.java", "Generated_*", true},
		{"star stays in segment", "com/acme/Parser.java", "com*Parser.java", false},

		{"doublestar any depth", "com/acme/util/Strings.java", "**/*.java", true},
		{"doublestar at root", "Strings.java", "**/*.java", true},
		{"doublestar suffix", "generated/com/acme/Lexer.java", "generated/**", true},
		{"doublestar middle", "src/test/java/com/acme/ParserTest.java", "src/**/ParserTest.java", true},
		{"doublestar empty", "src/ParserTest.java", "src/**/ParserTest.java", true},

		{"question single", "A1.java", "A?.java", true},
		{"question no match", "A12.java", "A?.java", false},

		{"char class", "Lexer1.java", "Lexer[0-9].java", true},
		{"char class no match", "LexerA.java", "Lexer[0-9].java", false},
		{"bang negation", "LexerA.java", "Lexer[!0-9].java", true},
		{"caret negation", "Lexer1.java", "Lexer[^0-9].java", false},

		{"unanchored nested dir", "module/target/classes", "target/**", true},
		{"unanchored dir itself", "module/target", "target/**", true},
		{"similar name no match", "module/targets/Foo.java", "target/**", false},
		{"unanchored file", "com/acme/package-info.java", "package-info.java", true},
		{"anchored root only", "gen/Foo.java", "/gen/**", true},
		{"anchored nested no match", "src/gen/Foo.java", "/gen/**", false},

		{"empty path", "", "**", true},
		{"empty pattern", "Foo.java", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchGlob(tt.path, tt.pattern)
			if got != tt.want {
				t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestValidGlob(t *testing.T) {
	for _, p := range []string{"**/test/**", "*Test.java", "/gen/**", "Lexer[!0-9].java"} {
		if err := validGlob(p); err != nil {
			t.Errorf("validGlob(%q) = %v, want nil", p, err)
		}
	}
	if err := validGlob("src/[abc"); err == nil {
		t.Error("validGlob should reject an unterminated class")
	}
}
