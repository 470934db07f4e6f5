// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the spotbench CLI.
//
// UserError carries what went wrong, why, and how to fix it, together with
// the exit code the CLI terminates with.
//
// # Usage Example
//
//	err := errors.NewReportError(
//	    "Cannot read analysis report",
//	    "spotbugs.xml is not a BugCollection document",
//	    "Run spotbugs with -xml:withMessages and pass the generated file",
//	    underlyingErr,
//	)
//	errors.FatalError(err, false)
//	// Error: Cannot read analysis report
//	// Cause: spotbugs.xml is not a BugCollection document
//	// Fix:   Run spotbugs with -xml:withMessages and pass the generated file
//
// With --json the same error is written to stderr as
//
//	{
//	  "error": "Cannot read analysis report",
//	  "cause": "spotbugs.xml is not a BugCollection document",
//	  "fix": "Run spotbugs with -xml:withMessages and pass the generated file",
//	  "exit_code": 2
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitConfig (1): Missing or invalid .spotbench.yaml
//   - ExitReport (2): Analysis report unreadable or malformed
//   - ExitSource (3): Java sources could not be indexed
//   - ExitInput (4): Invalid arguments or descriptors
//   - ExitPermission (5): Permission denied
//   - ExitNotFound (6): File or directory not found
//   - ExitInternal (10): Internal errors (bugs, panics)
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	ExitSuccess    = 0
	ExitConfig     = 1
	ExitReport     = 2
	ExitSource     = 3
	ExitInput      = 4
	ExitPermission = 5
	ExitNotFound   = 6

	// ExitInternal signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
type UserError struct {
	// Message describes what went wrong.
	Message string

	// Cause explains why it happened.
	Cause string

	// Fix is an actionable suggestion.
	Fix string

	// ExitCode is used when the CLI exits because of this error.
	ExitCode int

	// Err is the wrapped error, if any.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

func newError(code int, msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: code,
		Err:      err,
	}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return newError(ExitConfig, msg, cause, fix, err)
}

// NewReportError creates an error for unreadable or malformed analysis
// reports, with exit code ExitReport.
func NewReportError(msg, cause, fix string, err error) *UserError {
	return newError(ExitReport, msg, cause, fix, err)
}

// NewSourceError creates an error for source indexing failures, with exit
// code ExitSource.
func NewSourceError(msg, cause, fix string, err error) *UserError {
	return newError(ExitSource, msg, cause, fix, err)
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors do not wrap an underlying error.
//
// Example:
//
//	return NewInputError(
//	    "Not a method descriptor",
//	    "run(int) does not start with '('",
//	    "Pass a descriptor such as (ILjava/lang/String;)V",
//	)
func NewInputError(msg, cause, fix string) *UserError {
	return newError(ExitInput, msg, cause, fix, nil)
}

// NewPermissionError creates a permission denied error with exit code ExitPermission.
func NewPermissionError(msg, cause, fix string, err error) *UserError {
	return newError(ExitPermission, msg, cause, fix, err)
}

// NewNotFoundError creates a resource not found error with exit code ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return newError(ExitNotFound, msg, cause, fix, nil)
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return newError(ExitInternal, msg, cause, fix, err)
}

// FromFileError classifies a filesystem error: missing files become
// ExitNotFound, denied access ExitPermission. Any other error is passed to
// fallback, which builds the category-specific error.
func FromFileError(msg, path string, err error, fallback func(msg, cause, fix string, err error) *UserError) *UserError {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		ue := NewNotFoundError(msg, path+" does not exist", "Check the path or the .spotbench.yaml setting")
		ue.Err = err
		return ue
	case stderrors.Is(err, fs.ErrPermission):
		return NewPermissionError(msg, "Permission denied for "+path, "Run with access to "+path, err)
	default:
		return fallback(msg, err.Error(), "", err)
	}
}

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	causeLabel = color.New(color.FgYellow)
	fixLabel   = color.New(color.FgGreen)
)

// Format renders the error for a terminal:
//
//	Error: <Message>
//	Cause: <Cause>
//	Fix:   <Fix>
//
// Empty Cause and Fix lines are left out. Labels are colored unless noColor
// is set or NO_COLOR is present; the global color.NoColor is restored after.
func (e *UserError) Format(noColor bool) string {
	restore := color.NoColor
	defer func() { color.NoColor = restore }()
	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	lines := []struct {
		label *color.Color
		name  string
		text  string
	}{
		{errorLabel, "Error: ", e.Message},
		{causeLabel, "Cause: ", e.Cause},
		{fixLabel, "Fix:   ", e.Fix},
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 && l.text == "" {
			continue
		}
		b.WriteString(l.label.Sprint(l.name))
		b.WriteString(l.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// ErrorJSON is the --json form of an error, written to stderr.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON returns the --json form of e.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Print writes err to w as text or JSON and returns the exit code for it.
// Errors that are not UserErrors are reported with ExitInternal.
func Print(w io.Writer, err error, jsonOutput bool) int {
	var ue *UserError
	if !stderrors.As(err, &ue) {
		ue = NewInternalError(err.Error(), "", "", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ue.ToJSON())
	} else {
		_, _ = io.WriteString(w, ue.Format(false))
	}
	return ue.ExitCode
}

// FatalError reports err on stderr and exits with its code.
// It never returns for a non-nil error.
func FatalError(err error, jsonOutput bool) {
	if err == nil {
		return
	}
	os.Exit(Print(os.Stderr, err, jsonOutput))
}
