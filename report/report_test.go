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

package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/report"
)

func TestHasErrors(t *testing.T) {
	var r report.Report
	assert.False(t, r.HasErrors())

	r.WarnAt("x.cc", 0, 1, 1, "style nit")
	assert.False(t, r.HasErrors())

	r.ErrorAt("x.cc", 5, 1, 6, "undefined symbol %q", "foo")
	assert.True(t, r.HasErrors())
	require.Len(t, r.Diagnostics(), 2)
}

func TestSortedByPosition(t *testing.T) {
	var r report.Report
	r.ErrorAt("b.cc", 10, 3, 1, "second")
	r.ErrorAt("a.cc", 10, 3, 1, "first file")
	r.ErrorAt("b.cc", 0, 1, 1, "first line")

	sorted := r.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, "first file", sorted[0].Message)
	assert.Equal(t, "first line", sorted[1].Message)
	assert.Equal(t, "second", sorted[2].Message)
}

func TestWriteTo(t *testing.T) {
	var r report.Report
	r.ErrorAt("x.cc", 4, 1, 5, "unresolved symbol `missing`")

	var buf bytes.Buffer
	r.WriteTo(&buf, func(file string, line int) (string, bool) {
		if file == "x.cc" && line == 1 {
			return "data a ^missing;", true
		}
		return "", false
	})

	out := buf.String()
	assert.Contains(t, out, "x.cc:1:5: error: unresolved symbol `missing`")
	assert.Contains(t, out, "data a ^missing;")
	assert.Contains(t, out, "^")
}
