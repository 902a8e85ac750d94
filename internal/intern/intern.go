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

// package intern provides an interning table abstraction to optimize symbol
// resolution.
//
// Unlike a map-backed intern table, this one is a literal byte arena plus a
// hash-bucket chain, matching the data layout a hand-rolled systems compiler
// would use: interning never probes a Go map, it appends to one of two
// arenas (raw bytes, and a parallel [arena.Arena] of (offset, next) records)
// and links a bucket head. This is the one place in this repository where a
// byte slice, rather than an AST entity, is the thing being arena-allocated.
package intern

import (
	"fmt"

	"github.com/corelang/corec/internal/arena"
)

// ID is a handle for an interned string. The zero ID always denotes the
// empty string, which every Table recognizes without an arena entry.
type ID arena.Pointer[stringInfo]

// Nil reports whether this is the zero ID (the empty string).
func (id ID) Nil() bool {
	return arena.Pointer[stringInfo](id).Nil()
}

// String implements [fmt.Stringer]. It does not recover the interned text;
// use [Table.Value] for that.
func (id ID) String() string {
	return fmt.Sprintf("intern.ID(%d)", arena.Untyped(id))
}

// stringInfo is the side-table record for one interned, non-empty string:
// its starting offset into the byte arena, and the next record in its hash
// bucket's chain (0 if none).
//
// length(s) = offset(s+1) - offset(s) - 1, where offset(s+1) is the offset
// of whichever string was interned immediately after s, or, for the
// most-recently interned string, Table.sentinel. The "- 1" accounts for the
// NUL terminator appended after every string's bytes.
type stringInfo struct {
	offset int32
	next   ID
}

// Table is an interning table: a byte arena, deduplicated by content via a
// chained hash table.
//
// The zero Table is not ready to use; call [NewTable].
type Table struct {
	bytes    []byte
	infos    arena.Arena[stringInfo]
	buckets  []ID
	sentinel int32 // Offset one past the last interned string's NUL.
}

// defaultBuckets is the initial bucket count for a freshly-constructed
// Table. It is a power of two so that bucketing by hash is a mask, not a
// modulo.
const defaultBuckets = 64

// NewTable returns a ready-to-use Table with its bucket array pre-sized.
func NewTable() *Table {
	return &Table{buckets: make([]ID, defaultBuckets)}
}

// Intern adds s to the table if it is not already present, and returns its
// (canonical, deduplicated) ID.
//
// For all byte sequences a, b: Intern(a) == Intern(b) iff a == b. This
// function is a pure function of its argument's content; the returned ID's
// underlying bytes are stable for the Table's lifetime.
func (t *Table) Intern(s string) ID {
	if len(s) == 0 {
		return ID(0)
	}

	h := fnv1a(s)
	bucket := h & uint32(len(t.buckets)-1)

	for id := t.buckets[bucket]; !id.Nil(); {
		info := arena.Pointer[stringInfo](id).In(&t.infos)
		if t.text(*info, id) == s {
			return id
		}
		id = info.next
	}

	t.maybeGrow()
	bucket = h & uint32(len(t.buckets)-1) // t.buckets may have just grown.

	offset := int32(len(t.bytes))
	t.bytes = append(t.bytes, s...)
	t.bytes = append(t.bytes, 0)
	t.sentinel = int32(len(t.bytes))

	ptr := t.infos.New(stringInfo{offset: offset, next: t.buckets[bucket]})
	id := ID(ptr)
	t.buckets[bucket] = id
	return id
}

// Value converts an ID back into its interned string.
//
// If id was produced by a different Table, the result is unspecified,
// including potentially a panic.
func (t *Table) Value(id ID) string {
	if id.Nil() {
		return ""
	}
	info := arena.Pointer[stringInfo](id).In(&t.infos)
	return t.text(*info, id)
}

// Len reports the number of distinct non-empty strings interned so far.
func (t *Table) Len() int {
	return t.infos.Len()
}

// text recovers the string named by info, whose ID is id: it looks at the
// offset of whatever was interned immediately after id (or the sentinel, if
// id was the last thing interned) to compute the length, per the invariant
// documented on stringInfo.
func (t *Table) text(info stringInfo, id ID) string {
	next := t.sentinel
	if raw := arena.Untyped(id); int(raw) < t.infos.Len() {
		following := arena.Pointer[stringInfo](raw + 1).In(&t.infos)
		next = following.offset
	}
	length := next - info.offset - 1
	return string(t.bytes[info.offset : info.offset+length])
}

// maybeGrow doubles the bucket table once the chain length would on average
// exceed loadFactor, rehashing every existing ID into the new table.
const loadFactor = 4

func (t *Table) maybeGrow() {
	if t.infos.Len() < len(t.buckets)*loadFactor {
		return
	}

	grown := make([]ID, len(t.buckets)*2)
	for i := 1; i <= t.infos.Len(); i++ {
		id := ID(arena.Untyped(i))
		info := arena.Pointer[stringInfo](id).In(&t.infos)
		h := fnv1a(t.text(*info, id))
		bucket := h & uint32(len(grown)-1)
		info.next = grown[bucket]
		grown[bucket] = id
	}
	t.buckets = grown
}

// fnv1a hashes s using 32-bit FNV-1a, the same algorithm this compiler uses
// to hash identifiers before bucketing them.
func fnv1a(s string) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	h := uint32(offsetBasis)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}
