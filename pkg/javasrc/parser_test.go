// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parserSource = `package com.acme;

import java.util.List;
import java.util.Map;
import org.test.govind.SType;

public class Parser<T extends Comparable<T>> {
    public Parser(String name) {}

    void parse(short[] data, SType type) {}

    static int count(int a, long b, boolean c) { return 0; }

    public <E> E first(List<E> items, Map.Entry<String, E> entry) { return null; }

    void rank(T value, java.lang.String... labels) {}

    void legacy(String args[], int[][] grid) {}

    void none() {}

    static class Inner {
        void visit(Parser.Inner other) {}
    }
}
`

func parseFixture(t *testing.T, src string) []Method {
	t.Helper()
	methods, err := ParseSource(context.Background(), "com/acme/Parser.java", []byte(src), nil)
	require.NoError(t, err)
	return methods
}

func signatures(methods []Method) map[string]Method {
	out := make(map[string]Method, len(methods))
	for _, m := range methods {
		out[m.Signature()] = m
	}
	return out
}

func TestParseSource_Signatures(t *testing.T) {
	sigs := signatures(parseFixture(t, parserSource))

	for _, want := range []string{
		"<init>(String)",
		"parse(short[], SType)",
		"count(int, long, boolean)",
		"first(List, Entry)",
		"rank(Comparable, String[])",
		"legacy(String[], int[][])",
		"none()",
		"visit(Inner)",
	} {
		assert.Contains(t, sigs, want)
	}
	assert.Len(t, sigs, 8)
}

func TestParseSource_ClassAndLine(t *testing.T) {
	sigs := signatures(parseFixture(t, parserSource))

	parse := sigs["parse(short[], SType)"]
	assert.Equal(t, "Parser", parse.Class)
	assert.Equal(t, 10, parse.StartLine)
	assert.Equal(t, "com/acme/Parser.java", parse.File)

	visit := sigs["visit(Inner)"]
	assert.Equal(t, "Inner", visit.Class, "nested types carry their own name")
}

func TestParseSource_Interface(t *testing.T) {
	src := `interface Shape {
    double area();
    default void scale(double factor, int... axes) {}
}`
	sigs := signatures(parseFixture(t, src))
	assert.Contains(t, sigs, "area()")
	assert.Contains(t, sigs, "scale(double, int[])")
}

func TestParseSource_SyntaxError(t *testing.T) {
	src := `class Broken {
    void ok(int a) {}
    void bad( {
}`
	methods := parseFixture(t, src)
	assert.Contains(t, signatures(methods), "ok(int)", "declarations before the error survive")
}

func TestNormalizeType(t *testing.T) {
	vars := map[string]string{"T": "Object", "K": "Number"}
	tests := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"String", "String"},
		{"java.lang.String", "String"},
		{"List<String>", "List"},
		{"Map<String, List<Integer>>", "Map"},
		{"Map.Entry<K, V>", "Entry"},
		{"int[]", "int[]"},
		{"byte [ ] [ ]", "byte[][]"},
		{"T", "Object"},
		{"K[]", "Number[]"},
		{"java.util.List<T>[]", "List[]"},
	}
	for _, tt := range tests {
		if got := normalizeType(tt.in, vars); got != tt.want {
			t.Errorf("normalizeType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMethodSignature(t *testing.T) {
	assert.Equal(t, "run()", Method{Name: "run"}.Signature())
	assert.Equal(t, "run(int, String)", Method{Name: "run", Params: []string{"int", "String"}}.Signature())
}
