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

package ast

import (
	"github.com/corelang/corec/internal/arena"
	"github.com/corelang/corec/token"
)

// StmtKind discriminates the variants of Stmt.
type StmtKind int8

const (
	StmtExpr StmtKind = iota + 1
	StmtData
	StmtArray
	StmtCompound
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "expr"
	case StmtData:
		return "data"
	case StmtArray:
		return "array"
	case StmtCompound:
		return "compound"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtFor:
		return "for"
	case StmtReturn:
		return "return"
	default:
		return "stmt(?)"
	}
}

// Stmt is one node of a statement tree. Which fields are meaningful
// depends on Kind:
//
//   - StmtExpr: Expr (evaluated for effect).
//   - StmtData: Data.
//   - StmtArray: Array.
//   - StmtCompound: Scope (the block scope this compound opened), and
//     [FirstChild, NumChildren) into the ChildStmt arena.
//   - StmtIf: Cond, Then, and Else (the zero StmtID when there is no else
//     branch).
//   - StmtWhile: Cond, Body.
//   - StmtFor: Init, Cond, Post, Body (`for ( Init ; Cond ; Post ) Body`).
//   - StmtReturn: Expr (the zero ExprID for a bare `return;`).
type Stmt struct {
	Kind StmtKind
	Tok  token.ID

	Expr  ExprID
	Data  DataID
	Array ArrayID

	Scope       ScopeID
	FirstChild  ChildStmtID
	NumChildren int

	Cond ExprID
	Then StmtID
	Else StmtID
	Body StmtID

	Init StmtID
	Post StmtID
}

// StmtID is a handle into a Context's stmt arena.
type StmtID arena.Pointer[Stmt]

// Nil reports whether id is the zero handle.
func (id StmtID) Nil() bool {
	return arena.Pointer[Stmt](id).Nil()
}

// Stmt dereferences a stmt handle.
func (c *Context) Stmt(id StmtID) *Stmt {
	return arena.Pointer[Stmt](id).In(&c.stmts)
}

func (c *Context) NewExprStmt(tok token.ID, e ExprID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtExpr, Tok: tok, Expr: e}))
}

func (c *Context) NewDataStmt(tok token.ID, d DataID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtData, Tok: tok, Data: d}))
}

func (c *Context) NewArrayStmt(tok token.ID, a ArrayID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtArray, Tok: tok, Array: a}))
}

func (c *Context) NewIfStmt(tok token.ID, cond ExprID, then, els StmtID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtIf, Tok: tok, Cond: cond, Then: then, Else: els}))
}

func (c *Context) NewWhileStmt(tok token.ID, cond ExprID, body StmtID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtWhile, Tok: tok, Cond: cond, Body: body}))
}

func (c *Context) NewForStmt(tok token.ID, init StmtID, cond ExprID, post, body StmtID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtFor, Tok: tok, Init: init, Cond: cond, Post: post, Body: body}))
}

func (c *Context) NewReturnStmt(tok token.ID, e ExprID) StmtID {
	return StmtID(c.stmts.New(Stmt{Kind: StmtReturn, Tok: tok, Expr: e}))
}

// ChildStmt is one (parent, child, rank) tuple recording that child is the
// rank'th statement of the compound statement parent.
type ChildStmt struct {
	Parent StmtID
	Child  StmtID
	Rank   int
}

// ChildStmtID is a handle into a Context's child-stmt arena.
type ChildStmtID arena.Pointer[ChildStmt]

// NewCompound allocates a StmtCompound over scope with the given child
// statements, in order. Like [Context.NewCall], children must already be
// fully parsed (including any of their own nested compounds, which commit
// their own ChildStmt run first) before this is called, so that this
// compound's own run is contiguous: nothing else appends to the ChildStmt
// arena between these N appends.
func (c *Context) NewCompound(tok token.ID, scope ScopeID, children []StmtID) StmtID {
	id := StmtID(c.stmts.New(Stmt{Kind: StmtCompound, Tok: tok, Scope: scope}))
	if len(children) > 0 {
		first := c.childs.Len() + 1
		for i, ch := range children {
			c.childs.New(ChildStmt{Parent: id, Child: ch, Rank: i})
		}
		s := c.Stmt(id)
		s.FirstChild = ChildStmtID(arena.Untyped(first))
		s.NumChildren = len(children)
	}
	return id
}

// Children returns compound's child statements in order.
func (c *Context) Children(compound StmtID) []StmtID {
	s := c.Stmt(compound)
	out := make([]StmtID, 0, s.NumChildren)
	c.childs.Range(arena.Untyped(s.FirstChild), s.NumChildren, func(_ arena.Untyped, cs *ChildStmt) {
		out = append(out, cs.Child)
	})
	return out
}
