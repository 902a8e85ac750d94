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
	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/source"
)

// Resolve binds every Symref in ctx to the Symbol its lexical scope chain
// names, per distilled §4.4:
//
//	s := refScope
//	loop:
//	  search symbols whose scope == s and name == refName
//	  if found: bind and return
//	  if s is root: fail "undefined symbol"
//	  s := parent(s)
//
// Every Symbol already exists by the time Resolve runs once (the entire
// file set has been parsed), so the inner search -- [ast.Context.LookupDirect]
// -- is a scan over a scope's already-committed, contiguous member run, and
// the walk never needs to re-order or defer anything: invariant 5
// (resolution idempotence) holds because Resolve skips any Symref whose Sym
// is already set, so running it a second time over an already-resolved AST
// touches nothing.
//
// Resolve does not check that a resolved Symbol has the kind a particular
// use site expects (e.g. that a `^NAME` type reference names a type, not a
// proc): that is a per-use-site concern. The one use site this front end
// cares about -- TypeReference -- checks it during [Complete], because a
// kind mismatch there is indistinguishable from "never completes" without
// also inspecting the resolved Symbol's kind.
func Resolve(ctx *ast.Context, files *source.Set, rep *report.Report) {
	for i := 1; i <= ctx.NumSymrefs(); i++ {
		id := ast.SymrefID(i)
		ref := ctx.Symref(id)
		if !ref.Sym.Nil() {
			continue
		}
		resolveOne(ctx, files, rep, id, ref)
	}
}

func resolveOne(ctx *ast.Context, files *source.Set, rep *report.Report, id ast.SymrefID, ref *ast.Symref) {
	s := ref.RefScope
	for {
		if sym, ok := ctx.LookupDirect(s, ref.Name); ok {
			ctx.Resolve(id, sym)
			return
		}
		scope := ctx.Scope(s)
		if scope.Parent == s {
			file, offset, line, col := position(ctx, files, ref.Tok)
			rep.ErrorAt(file, offset, line, col, "undefined symbol %q", ctx.Strings.Value(ref.Name))
			return
		}
		s = scope.Parent
	}
}
