// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import "strings"

// Method is a method or constructor declared in a Java source file.
type Method struct {
	// Class is the simple name of the enclosing type.
	Class string
	// Name is the method name, or "<init>" for constructors.
	Name string
	// Params holds the normalized parameter types in declaration order.
	Params    []string
	File      string
	StartLine int
}

// Signature renders the method as name(type, ...).
func (m Method) Signature() string {
	return m.Name + "(" + strings.Join(m.Params, ", ") + ")"
}

// normalizeType turns a source type into its descriptor rendering.
// typeVars maps type variable names to their erasure.
func normalizeType(src string, typeVars map[string]string) string {
	t := stripGenerics(src)
	t = strings.Join(strings.Fields(t), "")

	dims := 0
	for strings.HasSuffix(t, "[]") {
		dims++
		t = strings.TrimSuffix(t, "[]")
	}

	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		t = t[i+1:]
	}
	if erased, ok := typeVars[t]; ok {
		t = erased
	}
	return t + strings.Repeat("[]", dims)
}

// stripGenerics removes every <...> section, including nested ones.
func stripGenerics(s string) string {
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '<':
			depth++
		case c == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}
