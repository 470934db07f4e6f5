// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/spotbench/internal/contract"
)

func TestConvertOne(t *testing.T) {
	tests := []struct {
		desc   string
		params string
		ok     bool
	}{
		{"(ILjava/lang/String;[I)V", "int, String, int[]", true},
		{"()V", "", true},
		{"([SLorg/test/govind/SType;)V", "short[], SType", true},
		{"run(int)", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			res := convertOne(tt.desc)
			assert.Equal(t, tt.ok, res.OK)
			assert.Equal(t, tt.params, res.Params)
			if !tt.ok {
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestConvertOne_TooLong(t *testing.T) {
	desc := "(" + strings.Repeat("I", contract.MaxDescriptorBytes) + ")V"
	res := convertOne(desc)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "limit")
}

func TestConvertAll_Text(t *testing.T) {
	captureUI(t)
	var out bytes.Buffer
	failed, err := convertAll([]string{"(I)V", "nope"}, nil, &out, false)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "(I)V\tint", lines[0])
	assert.Equal(t, "nope\t(not a method descriptor)", lines[1])
}

func TestConvertAll_TextTooLong(t *testing.T) {
	captureUI(t)
	var out bytes.Buffer
	desc := "(" + strings.Repeat("I", contract.MaxDescriptorBytes) + ")V"
	failed, err := convertAll([]string{desc}, nil, &out, false)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, desc+"\t(descriptor exceeds size limit)\n", out.String())
}

func TestConvertAll_StdinJSON(t *testing.T) {
	in := strings.NewReader("(JZ)V\n\n  ([[Ljava/lang/Object;)V  \nfoo\n")
	var out bytes.Buffer
	failed, err := convertAll(nil, in, &out, true)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var results []ConvertResult
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r ConvertResult
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	require.Len(t, results, 3, "blank lines are skipped")
	assert.Equal(t, "long, boolean", results[0].Params)
	assert.Equal(t, "([[Ljava/lang/Object;)V", results[1].Descriptor, "lines are trimmed")
	assert.Equal(t, "Object[][]", results[1].Params)
	assert.False(t, results[2].OK)
}

func TestConvertAll_LineTooLong(t *testing.T) {
	in := strings.NewReader(strings.Repeat("x", contract.MaxDescriptorBytes+2) + "\n")
	_, err := convertAll(nil, in, &bytes.Buffer{}, false)
	assert.Error(t, err)
}
