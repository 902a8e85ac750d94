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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/source"
)

func TestLineColFirstLine(t *testing.T) {
	strings := intern.NewTable()
	var set source.Set
	id := set.FromBytes(strings, "t.cc", []byte("data x int;\ndata y int;\n"))
	f := set.At(id)

	line, col := f.LineCol(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = f.LineCol(5)
	assert.Equal(t, 1, line)
	assert.Equal(t, 6, col)
}

func TestLineColMidAndLastLine(t *testing.T) {
	strings := intern.NewTable()
	var set source.Set
	id := set.FromBytes(strings, "t.cc", []byte("data x int;\ndata y int;\nreturn;"))
	f := set.At(id)

	// First byte of the second line.
	line, col := f.LineCol(12)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	// Somewhere into the third (final, unterminated) line.
	line, col = f.LineCol(30)
	assert.Equal(t, 3, line)
	assert.Equal(t, 7, col)
}

func TestLineColEmptyFile(t *testing.T) {
	strings := intern.NewTable()
	var set source.Set
	id := set.FromBytes(strings, "t.cc", nil)
	f := set.At(id)

	line, col := f.LineCol(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}
