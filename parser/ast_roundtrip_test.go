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

package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/ast"
)

// exprShape is a position-free snapshot of an expression tree: every field
// of [ast.Expr] except Tok, which is expected to differ between two
// otherwise-identical parses (different token arenas). Comparing shapes
// with go-cmp instead of comparing ExprIDs directly is what makes this a
// structural round-trip check rather than a handle-identity check, which
// would trivially always fail across two separate Contexts.
type exprShape struct {
	Kind     ast.ExprKind
	IntValue int64
	RefName  string
	Unop     ast.UnopKind
	Binop    ast.BinopKind
	Operand  *exprShape
	Left     *exprShape
	Right    *exprShape
	Index    *exprShape
	Name     string
	Callee   *exprShape
	Args     []*exprShape
}

func shapeOf(ctx *ast.Context, id ast.ExprID) *exprShape {
	if id.Nil() {
		return nil
	}
	e := ctx.Expr(id)
	s := &exprShape{
		Kind:     e.Kind,
		IntValue: e.IntValue,
		Unop:     e.Unop,
		Binop:    e.Binop,
		Operand:  shapeOf(ctx, e.Operand),
		Left:     shapeOf(ctx, e.Left),
		Right:    shapeOf(ctx, e.Right),
		Index:    shapeOf(ctx, e.Index),
	}
	if e.Kind == ast.ExprIdent {
		s.RefName = ctx.Strings.Value(ctx.Symref(e.Ref).Name)
	}
	if e.Kind == ast.ExprMember {
		s.Name = ctx.Strings.Value(e.Name)
	}
	if e.Kind == ast.ExprCall {
		s.Callee = shapeOf(ctx, e.Callee)
		for _, arg := range ctx.Args(id) {
			s.Args = append(s.Args, shapeOf(ctx, arg))
		}
	}
	return s
}

// TestExpressionTreeRoundTripsStructurally parses the same source twice,
// into two independent Contexts, and checks the two expression trees are
// identical in shape (SPEC_FULL §8's round-trip property, S5/S6): parsing
// is a pure function of the token stream, so doing it twice must yield the
// same tree even though the two runs share no arena, token, or handle.
func TestExpressionTreeRoundTripsStructurally(t *testing.T) {
	const src = "proc f() int { 1 + 2 * f(a, b.c[3]); return 0; }"

	ctxA, repA, pA := setup(t, src)
	require.True(t, pA.Parse())
	require.False(t, repA.HasErrors())

	ctxB, repB, pB := setup(t, src)
	require.True(t, pB.Parse())
	require.False(t, repB.HasErrors())

	procA := ctxA.Proc(ctxA.ProcOf(ctxA.Symbols(ctxA.Global)[0]))
	procB := ctxB.Proc(ctxB.ProcOf(ctxB.Symbols(ctxB.Global)[0]))

	exprStmtA := ctxA.Stmt(ctxA.Children(procA.Body)[0])
	exprStmtB := ctxB.Stmt(ctxB.Children(procB.Body)[0])

	shapeA := shapeOf(ctxA, exprStmtA.Expr)
	shapeB := shapeOf(ctxB, exprStmtB.Expr)

	if diff := cmp.Diff(shapeA, shapeB); diff != "" {
		t.Errorf("expression tree shape mismatch between two parses of the same source (-A +B):\n%s", diff)
	}
}
