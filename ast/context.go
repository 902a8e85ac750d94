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

// Package ast is the data model shared by every phase after lexing: Scope,
// Symbol, Symref, Type, Data, Array, Proc, Param, Expr, and Stmt, each in
// its own [arena.Arena] and addressed by a distinct handle type.
//
// There are no pointer-graph edges anywhere in this package; every
// cross-entity reference (a Symbol's scope, an Expr's operands, a Stmt's
// children) is a handle into the relevant arena. This is what makes the
// "dense linking invariant" possible: a container's children are appended
// to their arena in parse order immediately after the container opens, so
// they occupy a contiguous run the container can record as (first, count)
// instead of a linked list.
package ast

import (
	"github.com/corelang/corec/internal/arena"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/token"
)

// Context owns every arena for one compilation's AST. It is the thing
// passed explicitly through the Parse, Resolve, and Type-complete phases in
// place of the distilled source's global mutable state (see the design
// notes on aggregating phase state into a single context value).
//
// The zero Context is not ready to use; call [NewContext].
type Context struct {
	Strings *intern.Table

	tokens arena.Arena[token.Token]

	scopes       arena.Arena[Scope]
	scopeMembers arena.Arena[ScopeMember]
	symbols      arena.Arena[Symbol]
	symrefs      arena.Arena[Symref]

	types      arena.Arena[Type]
	paramTypes arena.Arena[ParamType]

	datas  arena.Arena[Data]
	arrays arena.Arena[Array]
	procs  arena.Arena[Proc]
	params arena.Arena[Param]

	exprs    arena.Arena[Expr]
	callArgs arena.Arena[CallArg]

	stmts  arena.Arena[Stmt]
	childs arena.Arena[ChildStmt]

	// Global is the single root Scope, created by NewContext. Its Parent is
	// itself, per distilled §3 ("0 sentinel or self for the root").
	Global ScopeID
}

// NewContext allocates a Context with its global scope already open.
func NewContext(strings *intern.Table) *Context {
	c := &Context{Strings: strings}
	root := c.scopes.New(Scope{Kind: ScopeGlobal})
	id := ScopeID(root)
	c.scopes.At(arena.Untyped(id)).Parent = id
	c.Global = id
	return c
}

// NewToken appends a token to this Context's token arena and returns its
// handle. Called by the lexer for every token it produces, per distilled
// §2 ("Lex ... produces Token handles").
func (c *Context) NewToken(t token.Token) token.ID {
	return token.ID(c.tokens.New(t))
}

// Token dereferences a token handle.
func (c *Context) Token(id token.ID) *token.Token {
	return arena.Pointer[token.Token](id).In(&c.tokens)
}
