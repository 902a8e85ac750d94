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

package intern_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/internal/intern"
)

func TestEmptyString(t *testing.T) {
	table := intern.NewTable()
	id := table.Intern("")
	assert.True(t, id.Nil())
	assert.Equal(t, "", table.Value(id))
}

func TestDeterminism(t *testing.T) {
	table := intern.NewTable()

	a := table.Intern("hello")
	b := table.Intern("hello")
	assert.Equal(t, a, b)
	assert.Equal(t, "hello", table.Value(a))

	c := table.Intern("world")
	assert.NotEqual(t, a, c)
	assert.Equal(t, "world", table.Value(c))

	// Re-interning an earlier string must still return its original ID, even
	// after other strings have been interned in between.
	d := table.Intern("hello")
	assert.Equal(t, a, d)
}

func TestManyStrings(t *testing.T) {
	table := intern.NewTable()

	ids := make(map[string]intern.ID)
	for i := range 500 {
		s := fmt.Sprintf("ident_%d", i)
		ids[s] = table.Intern(s)
	}
	require.Equal(t, 500, table.Len())

	for s, id := range ids {
		assert.Equal(t, s, table.Value(id))
		assert.Equal(t, id, table.Intern(s), "re-interning %q should be idempotent", s)
	}
}

func TestKeywordsDistinct(t *testing.T) {
	table := intern.NewTable()
	kws := []string{"if", "while", "for", "return", "proc", "data", "entity", "array"}

	seen := make(map[intern.ID]string)
	for _, kw := range kws {
		id := table.Intern(kw)
		if other, ok := seen[id]; ok {
			t.Fatalf("keyword %q collided with %q", kw, other)
		}
		seen[id] = kw
	}
}
