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

package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/internal/compile"
)

func TestEndToEndForwardReferenceCompletes(t *testing.T) {
	comp, rep, err := compile.CompileSources([]compile.Source{
		{Path: "t.cc", Data: []byte("data a ^b; entity b int;")},
	}, compile.WithSingleThreadedAssertion())
	require.NoError(t, err)
	require.False(t, rep.HasErrors())

	syms := comp.AST.Symbols(comp.AST.Global)
	require.Len(t, syms, 2)
	aData := comp.AST.Data(comp.AST.DataOf(syms[0]))
	tp := comp.AST.Type(aData.Type)
	assert.Equal(t, ast.TypeReference, tp.Kind)
	assert.True(t, tp.IsComplete)
}

func TestEndToEndUnresolvedSymbolStopsBeforeCompletion(t *testing.T) {
	comp, rep, err := compile.CompileSources([]compile.Source{
		{Path: "t.cc", Data: []byte("data a ^missing;")},
	})
	require.NoError(t, err)
	assert.True(t, rep.HasErrors())
	_ = comp
}

func TestEndToEndDuplicateSymbolStopsBeforeResolution(t *testing.T) {
	comp, rep, err := compile.CompileSources([]compile.Source{
		{Path: "t.cc", Data: []byte("data x int; data x int;")},
	})
	require.NoError(t, err)
	assert.True(t, rep.HasErrors())
	_ = comp
}

func TestIOFailureIsReportedAtPath(t *testing.T) {
	_, rep, err := compile.Compile([]string{"/nonexistent/does-not-exist.cc"})
	require.NoError(t, err)
	assert.True(t, rep.HasErrors())
}

func TestMultipleSourcesShareOneGlobalScope(t *testing.T) {
	// This compiler has no notion of separate compilation units
	// (distilled Non-goals), so two Source entries just mean two files
	// whose declarations land in the same global scope, in argument order.
	comp, rep, err := compile.CompileSources([]compile.Source{
		{Path: "a.cc", Data: []byte("data a int;")},
		{Path: "b.cc", Data: []byte("data b int;")},
	})
	require.NoError(t, err)
	require.False(t, rep.HasErrors())

	syms := comp.AST.Symbols(comp.AST.Global)
	require.Len(t, syms, 2)
	assert.Equal(t, "a", comp.AST.Strings.Value(syms[0].Name))
	assert.Equal(t, "b", comp.AST.Strings.Value(syms[1].Name))
}
