// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report contains the diagnostic sink every phase of the compiler
// reports through: a single channel for errors (fatal) and warnings
// (non-fatal), plus a default text renderer.
//
// This is a much smaller cousin of this repository's own diagnostics
// machinery (see the historical report2/reporter packages this was adapted
// from): no styling engine, no multi-snippet layout negotiation, because the
// distilled spec only asks for "(severity, file, offset, message) records to
// a collaborator-provided logging facility."
package report

import (
	"fmt"
)

// Level is a diagnostic's severity.
type Level int8

const (
	// Error is fatal: per distilled §7, the phase that produced it returns
	// immediately and no subsequent phase runs.
	Error Level = iota + 1
	// Warning does not halt compilation.
	Warning
	// Remark is an informational message.
	Remark
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Diagnostic is one reported condition.
type Diagnostic struct {
	Level Level

	// File is the source path this diagnostic concerns, or "" for
	// diagnostics with no associated file (internal invariant violations
	// surfaced outside of any particular phase).
	File string
	// Offset is the zero-based byte offset within File, or -1 if this
	// diagnostic has no specific position.
	Offset int
	// Line and Col are the 1-based human-readable position corresponding
	// to Offset, or 0 if Offset is -1.
	Line, Col int

	Message string
}

func (d Diagnostic) String() string {
	if d.Offset < 0 {
		return fmt.Sprintf("%s: %s", d.Level, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Col, d.Level, d.Message)
}

// Report accumulates diagnostics over the course of a compilation.
//
// The zero Report is empty and ready to use.
type Report struct {
	diagnostics []Diagnostic
}

// Errorf appends a fatal diagnostic with no associated source position.
func (r *Report) Errorf(format string, args ...any) {
	r.push(Error, "", -1, 0, 0, format, args)
}

// Warnf appends a non-fatal diagnostic with no associated source position.
func (r *Report) Warnf(format string, args ...any) {
	r.push(Warning, "", -1, 0, 0, format, args)
}

// ErrorAt appends a fatal diagnostic at the given file and position.
func (r *Report) ErrorAt(file string, offset, line, col int, format string, args ...any) {
	r.push(Error, file, offset, line, col, format, args)
}

// WarnAt appends a non-fatal diagnostic at the given file and position.
func (r *Report) WarnAt(file string, offset, line, col int, format string, args ...any) {
	r.push(Warning, file, offset, line, col, format, args)
}

// RemarkAt appends an informational diagnostic. Phase tracing does not go
// through here: package compile logs phase boundaries with zerolog.
func (r *Report) RemarkAt(file string, offset, line, col int, format string, args ...any) {
	r.push(Remark, file, offset, line, col, format, args)
}

func (r *Report) push(level Level, file string, offset, line, col int, format string, args []any) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Level:   level,
		File:    file,
		Offset:  offset,
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns every diagnostic reported so far, in the order they
// were reported.
func (r *Report) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// HasErrors reports whether any Error-level diagnostic has been reported.
// Per distilled §7, this is the single place that decides whether a
// pipeline stops.
func (r *Report) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics reported so far.
func (r *Report) Len() int {
	return len(r.diagnostics)
}
