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

package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/lexer"
	"github.com/corelang/corec/parser"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/sema"
	"github.com/corelang/corec/source"
)

func parse(t *testing.T, src string) (*ast.Context, *report.Report, *source.Set) {
	t.Helper()
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	files := &source.Set{}
	var rep report.Report

	file := files.FromBytes(strings, "t.cc", []byte(src))
	l := lexer.New(ctx, &rep, files, file)
	base := parser.PredeclaredTypes(ctx)
	p := parser.New(ctx, &rep, l, files.At(file), base)
	require.True(t, p.Parse())
	require.False(t, rep.HasErrors())
	return ctx, &rep, files
}

func TestS2ForwardTypeReferenceCompletesOnSecondIteration(t *testing.T) {
	ctx, rep, files := parse(t, "data a ^b; entity b int;")

	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	syms := ctx.Symbols(ctx.Global)
	aData := ctx.Data(ctx.DataOf(syms[0]))
	refType := ctx.Type(aData.Type)
	require.False(t, refType.IsComplete)

	sema.Complete(ctx, files, rep)
	assert.False(t, rep.HasErrors())
	assert.True(t, refType.IsComplete)

	bSym := syms[1]
	bType := ctx.TypeOf(bSym)
	assert.Equal(t, bType, refType.Resolved)
}

func TestS3UnresolvedSymbolIsFatal(t *testing.T) {
	ctx, rep, files := parse(t, "data a ^missing;")

	sema.Resolve(ctx, files, rep)
	require.True(t, rep.HasErrors())

	found := false
	for _, d := range rep.Diagnostics() {
		if d.Level == report.Error {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolutionBindsToNearestEnclosingScope(t *testing.T) {
	ctx, rep, files := parse(t, "data x int; proc f() int { data x int; return x; }")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	globalSyms := ctx.Symbols(ctx.Global)
	proc := ctx.Proc(ctx.ProcOf(globalSyms[1]))
	body := ctx.Stmt(proc.Body)
	innerX := ctx.Symbols(body.Scope)[0]

	retStmt := ctx.Children(proc.Body)
	require.Len(t, retStmt, 2) // `data x int;` and `return x;`
	ret := ctx.Stmt(retStmt[1])
	require.Equal(t, ast.StmtReturn, ret.Kind)
	ident := ctx.Expr(ret.Expr)
	ref := ctx.Symref(ident.Ref)
	assert.Same(t, innerX, ctx.Symbol(ref.Sym))
}

func TestResolutionIsIdempotent(t *testing.T) {
	ctx, rep, files := parse(t, "data a ^b; entity b int;")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	syms := ctx.Symbols(ctx.Global)
	aData := ctx.Data(ctx.DataOf(syms[0]))
	before := ctx.Type(aData.Type).Ref

	sema.Resolve(ctx, files, rep) // invariant 5: a no-op the second time
	require.False(t, rep.HasErrors())
	assert.Equal(t, before, ctx.Type(aData.Type).Ref)
	assert.Equal(t, 0, rep.Len())
}

func TestDirectSelfContainmentIsIncomplete(t *testing.T) {
	// `entity b b;` has no surface syntax: a bare identifier type position
	// only accepts a predeclared primitive (parser/type.go requires a `^`
	// sigil for every other named type), so direct self-containment is
	// built here straight on the arena to exercise distilled §4.5's
	// tie-break ("entity of itself ... without a reference level is
	// incomplete") at the algorithm level.
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	var rep report.Report
	files := &source.Set{}

	id := ctx.NewEntityType(strings.Intern("b"), ast.TypeID(0))
	ctx.Type(id).Elem = id

	sema.Complete(ctx, files, &rep)
	assert.True(t, rep.HasErrors())
	assert.False(t, ctx.Type(id).IsComplete)
}

func TestSelfReferentialTypeTerminatesAsIncomplete(t *testing.T) {
	// `entity node ^node;` is syntactically fine (distilled §4.5: "a type
	// may contain a reference to itself"), but with no concrete base
	// anywhere in the cycle it never actually completes; this checks the
	// fixed point terminates instead of looping forever and reports each
	// still-incomplete type (the reference and the entity) once.
	ctx, rep, files := parse(t, "entity node ^node;")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	sema.Complete(ctx, files, rep)
	assert.True(t, rep.HasErrors())

	syms := ctx.Symbols(ctx.Global)
	nodeType := ctx.TypeOf(syms[0])
	assert.False(t, ctx.Type(nodeType).IsComplete)
}

func TestSelfReferenceThroughReferenceIsAllowed(t *testing.T) {
	// A linked-list-shaped entity: legal because the cycle passes through a
	// TypeReference (`^node`), not a direct TypeEntity->TypeEntity edge.
	ctx, rep, files := parse(t, "entity node int; data n ^node;")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	sema.Complete(ctx, files, rep)
	require.False(t, rep.HasErrors())

	syms := ctx.Symbols(ctx.Global)
	nData := ctx.Data(ctx.DataOf(syms[1]))
	assert.True(t, ctx.Type(nData.Type).IsComplete)
}

func TestKindMismatchOnNonTypeReference(t *testing.T) {
	ctx, rep, files := parse(t, "proc f() int { return 0; } data a ^f;")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	sema.Complete(ctx, files, rep)
	assert.True(t, rep.HasErrors())
}

func TestCompletionMonotonicity(t *testing.T) {
	ctx, rep, files := parse(t, "data a ^b; entity b int;")
	sema.Resolve(ctx, files, rep)
	require.False(t, rep.HasErrors())

	// Snapshot IsComplete before each of a few manual fixed-point passes;
	// it must never flip true -> false once set, across however many
	// sweeps Complete performs internally.
	n := ctx.NumTypes()
	before := make([]bool, n+1)
	for i := 1; i <= n; i++ {
		before[i] = ctx.Type(ast.TypeID(i)).IsComplete
	}

	sema.Complete(ctx, files, rep)

	for i := 1; i <= n; i++ {
		if before[i] {
			assert.True(t, ctx.Type(ast.TypeID(i)).IsComplete, "type %d regressed", i)
		}
	}
}
