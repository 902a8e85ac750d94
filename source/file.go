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

// Package source owns the Read phase: loading a single translation unit's
// bytes into memory and giving every later phase a cheap way to turn a byte
// offset into a human-readable line and column.
package source

import (
	"fmt"
	"os"

	"github.com/tidwall/btree"

	"github.com/corelang/corec/internal/arena"
	"github.com/corelang/corec/internal/intern"
)

// File owns the byte buffer for one input file, plus the line-offset table
// used to resolve diagnostics.
//
// A File never changes after [Read] constructs it; there is no phase that
// mutates file contents.
type File struct {
	Path  intern.ID
	Bytes []byte

	// lines maps each line's zero-based starting byte offset to its
	// 1-based line number. Offset 0 is always a key.
	lines btree.Map[int, int]
}

// ID is a handle into a [Set], distinct from every other entity handle in
// this compiler.
type ID arena.Pointer[File]

// Nil reports whether id is the zero handle.
func (id ID) Nil() bool {
	return arena.Pointer[File](id).Nil()
}

// Set is the arena of every File read during this compilation, one per
// input path; all of them feed the same global scope. The arena shape is
// kept uniform with every other entity kind.
type Set struct {
	files arena.Arena[File]
}

// Read loads path off disk into a fresh File and returns its handle.
//
// This is the one place in the compiler that performs synchronous I/O; it
// is fatal ([error] non-nil) if the file is missing or unreadable. The
// caller ([compile.Compile]) is responsible for turning that error into an
// I/O-failure diagnostic.
func (s *Set) Read(strings *intern.Table, path string) (ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ID(0), fmt.Errorf("corec: cannot read %s: %w", path, err)
	}
	return s.FromBytes(strings, path, data), nil
}

// FromBytes constructs a File directly from an in-memory byte slice, without
// touching the filesystem. This is what lets tests and the CLI's concurrent
// prefetch (see cmd/corec) hand already-loaded bytes to the compiler.
func (s *Set) FromBytes(strings *intern.Table, path string, data []byte) ID {
	f := File{
		Path:  strings.Intern(path),
		Bytes: data,
		lines: computeLines(data),
	}
	return ID(s.files.New(f))
}

// At dereferences a File handle.
func (s *Set) At(id ID) *File {
	return arena.Pointer[File](id).In(&s.files)
}

func computeLines(data []byte) btree.Map[int, int] {
	var lines btree.Map[int, int]
	lines.Set(0, 1)
	line := 2
	for i, b := range data {
		if b == '\n' {
			lines.Set(i+1, line)
			line++
		}
	}
	return lines
}

// LineCol converts a zero-based byte offset into a 1-based (line, column)
// pair, both counted in bytes. This is ambient diagnostics bookkeeping the
// distilled spec leaves to its "pretty-printer" collaborator, but a
// complete core needs it to honor the (file, offset) contract of every
// fatal diagnostic (see package report).
//
// The line table is a btree.Map keyed by each line's starting offset, the
// same ordered-map collaborator the teacher's internal/interval package
// uses for its own position lookups; this is the same floor-lookup problem
// applied to one dimension instead of an interval's two.
func (f *File) LineCol(offset int) (line, col int) {
	iter := f.lines.Iter()
	start, lineNo := 0, 1
	if found := iter.Seek(offset); found && iter.Key() == offset {
		start, lineNo = iter.Key(), iter.Value()
	} else if found {
		// iter sits on the first line-start strictly greater than offset;
		// step back to the floor (the line offset actually belongs to).
		if iter.Prev() {
			start, lineNo = iter.Key(), iter.Value()
		}
	} else if iter.Last() {
		// No line starts at or after offset: offset belongs to the final line.
		start, lineNo = iter.Key(), iter.Value()
	}
	return lineNo, offset - start + 1
}
