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
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/token"
)

// ExprKind discriminates the variants of Expr. This is the literal kind
// set from distilled §3 ({literal, symref, unop, binop, member, subscript,
// call}), with "literal" refined into its one concrete payload shape
// (integer) since the source language surface has no other literal form.
type ExprKind int8

const (
	ExprInt ExprKind = iota + 1
	ExprIdent
	ExprUnop
	ExprBinop
	ExprMember
	ExprIndex
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "int"
	case ExprIdent:
		return "ident"
	case ExprUnop:
		return "unop"
	case ExprBinop:
		return "binop"
	case ExprMember:
		return "member"
	case ExprIndex:
		return "index"
	case ExprCall:
		return "call"
	default:
		return "expr(?)"
	}
}

// UnopKind is the operator of an ExprUnop: one entry per token the
// prefix-unop table maps (distilled §4.3), drawn from the punctuation set
// that isn't already claimed by a binop.
type UnopKind int8

const (
	UnopNeg   UnopKind = iota + 1 // -x
	UnopNot                       // !x
	UnopCompl                     // ~x
	UnopDeref                     // ^x
	UnopInc                       // ++x
	UnopDec                       // --x
)

// BinopKind is the operator of an ExprBinop: exactly the operator set
// distilled §6 lists ("+ − * / | & ^ == ="), precedence-climbed by package
// parser's table.
type BinopKind int8

const (
	BinopAssign BinopKind = iota + 1 // =, right-associative, lowest precedence
	BinopEq                          // ==
	BinopOr                          // |
	BinopXor                         // ^
	BinopAnd                         // &
	BinopAdd                         // +
	BinopSub                         // -
	BinopMul                         // *
	BinopDiv                         // /
)

// Expr is one node of an expression tree. Which fields are meaningful
// depends on Kind:
//
//   - ExprInt: IntValue.
//   - ExprIdent: Ref, the Symref this identifier use resolves against.
//   - ExprUnop: Unop, Operand.
//   - ExprBinop: Binop, Left, Right.
//   - ExprMember: Operand (the parent expression), Name (not resolved by
//     this front end; distilled §3 describes member purely as AST shape).
//   - ExprIndex: Operand (the array/pointer expression), Index (the
//     subscript expression).
//   - ExprCall: Callee, and [FirstArg, NumArgs) into the CallArg arena.
type Expr struct {
	Kind ExprKind
	Tok  token.ID

	IntValue int64

	Ref SymrefID

	Unop    UnopKind
	Binop   BinopKind
	Operand ExprID
	Left    ExprID
	Right   ExprID
	Index   ExprID
	Name    intern.ID

	Callee   ExprID
	FirstArg CallArgID
	NumArgs  int
}

// ExprID is a handle into a Context's expr arena.
type ExprID arena.Pointer[Expr]

// Nil reports whether id is the zero handle.
func (id ExprID) Nil() bool {
	return arena.Pointer[Expr](id).Nil()
}

// Expr dereferences an expr handle.
func (c *Context) Expr(id ExprID) *Expr {
	return arena.Pointer[Expr](id).In(&c.exprs)
}

func (c *Context) NewIntLit(tok token.ID, v int64) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprInt, Tok: tok, IntValue: v}))
}

func (c *Context) NewIdent(tok token.ID, ref SymrefID) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprIdent, Tok: tok, Ref: ref}))
}

func (c *Context) NewUnop(tok token.ID, op UnopKind, operand ExprID) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprUnop, Tok: tok, Unop: op, Operand: operand}))
}

func (c *Context) NewBinop(tok token.ID, op BinopKind, left, right ExprID) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprBinop, Tok: tok, Binop: op, Left: left, Right: right}))
}

func (c *Context) NewMember(tok token.ID, operand ExprID, name intern.ID) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprMember, Tok: tok, Operand: operand, Name: name}))
}

func (c *Context) NewIndex(tok token.ID, operand, index ExprID) ExprID {
	return ExprID(c.exprs.New(Expr{Kind: ExprIndex, Tok: tok, Operand: operand, Index: index}))
}

// CallArg is one (call, arg, rank) tuple.
type CallArg struct {
	Call ExprID
	Arg  ExprID
	Rank int
}

// CallArgID is a handle into a Context's call-arg arena.
type CallArgID arena.Pointer[CallArg]

// NewCall allocates an ExprCall over callee with the given arguments, in
// order. args must already be fully parsed (each may itself be a call that
// has already committed its own CallArg tuples) before this is called: the
// dense run this builds is only contiguous if nothing else appends to the
// CallArg arena between these N appends, which holds as long as the caller
// parses every argument expression to completion first and commits here
// last, which is what package parser's parseCallArgs does.
func (c *Context) NewCall(tok token.ID, callee ExprID, args []ExprID) ExprID {
	id := ExprID(c.exprs.New(Expr{Kind: ExprCall, Tok: tok, Callee: callee}))
	if len(args) > 0 {
		first := c.callArgs.Len() + 1
		for i, a := range args {
			c.callArgs.New(CallArg{Call: id, Arg: a, Rank: i})
		}
		e := c.Expr(id)
		e.FirstArg = CallArgID(arena.Untyped(first))
		e.NumArgs = len(args)
	}
	return id
}

// Args returns call's arguments in order.
func (c *Context) Args(call ExprID) []ExprID {
	e := c.Expr(call)
	out := make([]ExprID, 0, e.NumArgs)
	c.callArgs.Range(arena.Untyped(e.FirstArg), e.NumArgs, func(_ arena.Untyped, ca *CallArg) {
		out = append(out, ca.Arg)
	})
	return out
}
