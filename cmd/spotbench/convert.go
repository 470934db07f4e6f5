// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/contract"
	"github.com/kraklabs/spotbench/internal/errors"
	"github.com/kraklabs/spotbench/internal/output"
	"github.com/kraklabs/spotbench/internal/ui"
	"github.com/kraklabs/spotbench/pkg/descriptor"
)

// ConvertResult is one converted descriptor in JSON output.
type ConvertResult struct {
	Descriptor string `json:"descriptor"`
	Params     string `json:"params"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// runConvert executes the 'convert' CLI command, printing the parameter list
// of each JVM method descriptor given as an argument or, with no arguments
// or a single "-", one per line on stdin.
//
// Flags:
//   - --json: One JSON object per descriptor
//   - --strict: Exit with an input error if any argument is not a descriptor
//
// Examples:
//
//	spotbench convert '(ILjava/lang/String;[I)V'    int, String, int[]
//	javap -s Foo.class | grep descriptor: | ... | spotbench convert
func runConvert(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	jsonOutput := fs.Bool("json", globals.JSON, "Output as JSON lines")
	strict := fs.Bool("strict", false, "Fail if any input is not a method descriptor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: spotbench convert [options] [descriptor...]

Description:
  Convert JVM method descriptors such as (ILjava/lang/String;[I)V into
  comma-separated parameter lists (int, String, int[]).

  With no descriptors, or "-", descriptors are read from stdin, one per line.
  Inputs that do not start with "(" are reported as not a descriptor.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var in io.Reader
	descs := fs.Args()
	if len(descs) == 0 || (len(descs) == 1 && descs[0] == "-") {
		in = os.Stdin
		descs = nil
	}

	failed, err := convertAll(descs, in, os.Stdout, *jsonOutput)
	if err != nil {
		errors.FatalError(errors.NewInputError(
			"Cannot read descriptors",
			err.Error(),
			fmt.Sprintf("Pass descriptors as arguments or one per line, each under %d bytes", contract.MaxDescriptorBytes),
		), *jsonOutput)
	}
	if *strict && failed > 0 {
		errors.FatalError(errors.NewInputError(
			"Invalid descriptors",
			fmt.Sprintf("%d input(s) are not method descriptors", failed),
			"Method descriptors start with '(' e.g. (I)V",
		), *jsonOutput)
	}
}

// convertAll converts descs, then every line of in when it is non-nil, and
// writes one result per input to w. It returns how many inputs were not
// descriptors.
func convertAll(descs []string, in io.Reader, w io.Writer, jsonOutput bool) (int, error) {
	failed := 0
	emit := func(desc string) error {
		res := convertOne(desc)
		if !res.OK {
			failed++
		}
		return writeConvertResult(w, res, jsonOutput)
	}

	for _, d := range descs {
		if err := emit(d); err != nil {
			return failed, err
		}
	}
	if in == nil {
		return failed, nil
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), contract.MaxDescriptorBytes+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := emit(line); err != nil {
			return failed, err
		}
	}
	if err := sc.Err(); err != nil {
		return failed, fmt.Errorf("read stdin: %w", err)
	}
	return failed, nil
}

func convertOne(desc string) ConvertResult {
	if v := contract.ValidateDescriptor(desc); !v.OK {
		return ConvertResult{Descriptor: desc, Error: v.Message}
	}
	params, ok := descriptor.Convert(desc)
	res := ConvertResult{Descriptor: desc, Params: params, OK: ok}
	if !ok {
		res.Error = descriptor.ErrNotDescriptor.Error()
	}
	return res
}

func writeConvertResult(w io.Writer, res ConvertResult, jsonOutput bool) error {
	if jsonOutput {
		return output.JSONCompactTo(w, res)
	}
	if !res.OK {
		_, err := fmt.Fprintf(w, "%s\t%s\n", res.Descriptor, ui.DimText("("+res.Error+")"))
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", res.Descriptor, res.Params)
	return err
}
