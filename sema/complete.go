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

package sema

import (
	"fmt"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/source"
)

// completer carries the state one call to [Complete] threads through the
// fixed point: the Context and source.Set every diagnostic needs to
// resolve a position, the Report diagnostics go to, and the set of Types
// already reported for a kind mismatch (so a reference that never
// completes because its target is the wrong kind is reported exactly once,
// not once per fixed-point sweep).
type completer struct {
	ctx   *ast.Context
	files *source.Set
	rep   *report.Report

	mismatched map[ast.TypeID]bool
}

// Complete runs the type-completion fixed point of distilled §4.5 over
// every Type in ctx, flipping IsComplete from false to true (never the
// reverse, invariant 4) until a full sweep makes no further progress, then
// reports every Type still incomplete.
//
// Complete must run after [Resolve]: a TypeReference's completeness
// depends on its Symref having already been bound to a Symbol.
func Complete(ctx *ast.Context, files *source.Set, rep *report.Report) {
	c := &completer{ctx: ctx, files: files, rep: rep, mismatched: make(map[ast.TypeID]bool)}
	n := ctx.NumTypes()

	for {
		changed := false
		for i := 1; i <= n; i++ {
			if c.step(ast.TypeID(i)) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for i := 1; i <= n; i++ {
		id := ast.TypeID(i)
		t := ctx.Type(id)
		if t.IsComplete || c.mismatched[id] {
			continue
		}
		c.reportIncomplete(id, t)
	}
}

// step applies one completion rule to a single, still-incomplete Type. It
// returns whether it flipped IsComplete to true this call.
func (c *completer) step(id ast.TypeID) bool {
	t := c.ctx.Type(id)
	if t.IsComplete {
		return false
	}

	switch t.Kind {
	case ast.TypeBase:
		// Bases start complete (ast.NewBaseType); nothing to do here.
		return false

	case ast.TypeEntity:
		if c.ctx.Type(t.Elem).IsComplete {
			t.IsComplete = true
			return true
		}
		return false

	case ast.TypeArray:
		if c.ctx.Type(t.Elem).IsComplete && c.ctx.Type(t.Return).IsComplete {
			t.IsComplete = true
			return true
		}
		return false

	case ast.TypeProc:
		if !c.ctx.Type(t.Return).IsComplete {
			return false
		}
		for _, pt := range c.ctx.ParamTypes(id) {
			if !c.ctx.Type(pt).IsComplete {
				return false
			}
		}
		t.IsComplete = true
		return true

	case ast.TypeReference:
		return c.stepReference(id, t)

	default:
		unreachable("unhandled type kind %v", t.Kind)
		return false
	}
}

// stepReference applies distilled §4.5's reference rule: "complete iff its
// Symref resolved AND the referenced Symbol is of kind `type` AND the
// target Type is complete." A self-reference through a TypeReference is
// allowed (distilled §4.5's tie-break): the cycle simply doesn't resolve
// until the referenced type itself becomes complete some other way, which
// for a genuinely self-contained type never happens -- it stays incomplete
// and [Complete] reports it once the fixed point settles.
func (c *completer) stepReference(id ast.TypeID, t *ast.Type) bool {
	ref := c.ctx.Symref(t.Ref)
	if ref.Sym.Nil() {
		// Unresolved: Resolve already reported "undefined symbol" for this
		// Symref; the reference stays incomplete and, if Complete runs at
		// all, reportIncomplete flags it once more without a position.
		return false
	}

	sym := c.ctx.Symbol(ref.Sym)
	if sym.Kind != ast.SymbolType {
		if !c.mismatched[id] {
			c.mismatched[id] = true
			file, offset, line, col := position(c.ctx, c.files, ref.Tok)
			c.rep.ErrorAt(file, offset, line, col,
				"%q names a %s, not a type", c.ctx.Strings.Value(ref.Name), sym.Kind)
		}
		return false
	}

	target := c.ctx.TypeOf(sym)
	if !c.ctx.Type(target).IsComplete {
		return false
	}
	t.Resolved = target
	t.IsComplete = true
	return true
}

// reportIncomplete reports a Type that is still incomplete once the fixed
// point has settled. Only TypeReference carries a Symref (and therefore a
// source position); every other incomplete kind is reachable only through
// some TypeReference in its transitive structure, which will have been
// reported in its own right, so a positionless error is enough to flag
// the outer type without duplicating the same root cause.
func (c *completer) reportIncomplete(id ast.TypeID, t *ast.Type) {
	if t.Kind == ast.TypeReference {
		ref := c.ctx.Symref(t.Ref)
		if !ref.Sym.Nil() {
			file, offset, line, col := position(c.ctx, c.files, ref.Tok)
			c.rep.ErrorAt(file, offset, line, col, "incomplete type: %q never resolves to a complete type",
				c.ctx.Strings.Value(ref.Name))
			return
		}
	}
	name := c.ctx.Strings.Value(t.Name)
	if name == "" {
		c.rep.Errorf("incomplete %s type (id %d)", t.Kind, id)
		return
	}
	c.rep.Errorf("incomplete %s type %q", t.Kind, name)
}

func unreachable(format string, args ...any) {
	panic(fmt.Sprintf("sema: unreachable: "+format, args...))
}
