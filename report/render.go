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

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/corelang/corec/internal/ext/cmpx"
)

// byPosition orders Diagnostics by (file, line, col), built out of three
// single-field cmpx.Key orderings joined in priority order rather than one
// hand-rolled multi-field comparator.
var byPosition = cmpx.Join(
	cmpx.Key(func(d Diagnostic) string { return d.File }),
	cmpx.Key(func(d Diagnostic) int { return d.Line }),
	cmpx.Key(func(d Diagnostic) int { return d.Col }),
)

// Sorted returns a copy of this report's diagnostics ordered by (file,
// line, col), stable on ties. Use this before rendering: phases append
// diagnostics in detection order, which need not be source order (e.g. type
// completion visits the type arena, not the token stream).
func (r *Report) Sorted() []Diagnostic {
	out := append([]Diagnostic(nil), r.diagnostics...)
	sort.SliceStable(out, func(i, j int) bool {
		return byPosition(out[i], out[j]) == cmpx.Less
	})
	return out
}

// WriteTo renders every diagnostic in this report as one line per
// diagnostic, annotated with the offending source line and a caret
// underline when src is provided for that diagnostic's file.
//
// This is the "diagnostic formatting" collaborator the distilled spec
// treats as external; it is included here because cmd/corec needs a
// concrete renderer to print to stderr, not because the core depends on it.
func (r *Report) WriteTo(w io.Writer, sourceLines func(file string, line int) (string, bool)) {
	for _, d := range r.Sorted() {
		fmt.Fprintln(w, d.String())
		if sourceLines == nil || d.Offset < 0 {
			continue
		}
		line, ok := sourceLines(d.File, d.Line)
		if !ok {
			continue
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, caretUnderline(line, d.Col))
	}
}

// caretUnderline builds a line of spaces and a single `^` aligned under
// column col (1-based, counted in bytes, as source.File.LineCol reports it)
// of line, accounting for multi-byte and wide runes via uniseg so the caret
// lands under the right glyph in a terminal rather than under whatever byte
// happens to be at the naive index.
func caretUnderline(line string, col int) string {
	var b strings.Builder
	remaining := col - 1
	rest := line
	for remaining > 0 && rest != "" {
		cluster, next, width, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		for i := 0; i < width; i++ {
			b.WriteByte(' ')
		}
		rest = next
		remaining -= len(cluster)
	}
	b.WriteByte('^')
	return b.String()
}

// Width returns the terminal display width of s, for callers that need to
// align multiple diagnostics in a column.
func Width(s string) int {
	return uniseg.StringWidth(s)
}
