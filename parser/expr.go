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

package parser

import (
	"math"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/token"
)

// binopInfo is one row of the binary-operator precedence table (distilled
// §4.3: "Three tables map TokenKind -> operator kind").
type binopInfo struct {
	kind  ast.BinopKind
	prec  int
	rassc bool
}

// binops maps a token kind to its binop row. Precedence increases with
// binding strength; Assign sits at the bottom and is right-associative,
// matching "`=` ... has the lowest precedence and is right-associative".
var binops = map[token.Kind]binopInfo{
	token.Assign: {ast.BinopAssign, 1, true},
	token.Eq:     {ast.BinopEq, 2, false},
	token.Pipe:   {ast.BinopOr, 3, false},
	token.Caret:  {ast.BinopXor, 4, false},
	token.Amp:    {ast.BinopAnd, 5, false},
	token.Plus:   {ast.BinopAdd, 6, false},
	token.Minus:  {ast.BinopSub, 6, false},
	token.Star:   {ast.BinopMul, 7, false},
	token.Slash:  {ast.BinopDiv, 7, false},
}

// prefixUnops maps a token kind to the UnopKind it produces when consumed in
// prefix (primary) position.
var prefixUnops = map[token.Kind]ast.UnopKind{
	token.Minus:     ast.UnopNeg,
	token.Bang:      ast.UnopNot,
	token.Tilde:     ast.UnopCompl,
	token.Caret:     ast.UnopDeref,
	token.Increment: ast.UnopInc,
	token.Decrement: ast.UnopDec,
}

// postfixUnops maps a token kind to the UnopKind it produces when consumed
// as a postfix suffix after a primary has already been parsed. Per distilled
// §4.3, only `++`/`--` are postfix candidates; every other prefix-table
// entry (`-`, `!`, `~`, `^`) is prefix-only, so there is never a genuine
// prefix/postfix ambiguity to resolve by context for this grammar.
var postfixUnops = map[token.Kind]ast.UnopKind{
	token.Increment: ast.UnopInc,
	token.Decrement: ast.UnopDec,
}

// parseExpr parses an expression using precedence climbing, with min as the
// minimum binop precedence willing to be consumed at this recursion level.
func (p *Parser) parseExpr(min int) ast.ExprID {
	left := p.parseUnary()
	for {
		info, ok := binops[p.lex.PeekKind()]
		if !ok || info.prec < min {
			return left
		}
		tok := p.lex.Next()
		nextMin := info.prec + 1
		if info.rassc {
			nextMin = info.prec
		}
		right := p.parseExpr(nextMin)
		left = p.ctx.NewBinop(tok, info.kind, left, right)
	}
}

// parseUnary parses one prefix-unop application (if any) followed by a
// primary-with-postfix-suffixes term.
func (p *Parser) parseUnary() ast.ExprID {
	if op, ok := prefixUnops[p.lex.PeekKind()]; ok {
		tok := p.lex.Next()
		if op == ast.UnopNeg {
			if e, negated := p.foldNegatedIntLit(tok); negated {
				return p.parsePostfix(e)
			}
		}
		operand := p.parseUnary()
		return p.parsePostfix(p.ctx.NewUnop(tok, op, operand))
	}
	return p.parsePostfix(p.parsePrimary())
}

// foldNegatedIntLit implements the unary-minus-folds-into-the-literal
// supplement (SPEC_FULL §4.3): if the token right after a consumed `-` is a
// bare integer literal, build one ExprInt node holding its negation instead
// of a two-node unop(neg, literal). Only folds when the value fits in
// int64's range; math.MinInt64 is exactly representable as -(-math.MinInt64)
// would overflow, so that boundary is excluded and falls back to the unop
// form (harmless: int64 literals never reach 2^63 unnegated, since the
// lexer itself rejects that as an overflow).
func (p *Parser) foldNegatedIntLit(minusTok token.ID) (ast.ExprID, bool) {
	if p.lex.PeekKind() != token.Integer {
		return ast.ExprID(0), false
	}
	tok := p.lex.Next()
	v := p.ctx.Token(tok).Int
	if v == math.MinInt64 {
		return p.ctx.NewUnop(minusTok, ast.UnopNeg, p.ctx.NewIntLit(tok, v)), true
	}
	return p.ctx.NewIntLit(minusTok, -v), true
}

// parsePrimary parses the primary production: integer literal, identifier
// (-> Symref expr), or a parenthesized expression.
func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.lex.Next()
	t := p.ctx.Token(tok)
	switch t.Kind {
	case token.Integer:
		return p.ctx.NewIntLit(tok, t.Int)
	case token.Word:
		ref := p.ctx.NewSymref(t.Name, p.scope, tok)
		return p.ctx.NewIdent(tok, ref)
	case token.LParen:
		e := p.parseExpr(1)
		p.expect(token.RParen)
		return e
	default:
		p.fatalf(tok, "expected expression, found %s", t.Kind)
		panic(errParse{})
	}
}

// parsePostfix greedily consumes call/subscript/member/postfix-unop suffixes
// after a primary, per distilled §4.3.
func (p *Parser) parsePostfix(e ast.ExprID) ast.ExprID {
	for {
		switch p.lex.PeekKind() {
		case token.LParen:
			tok := p.lex.Next()
			args := p.parseCallArgs()
			e = p.ctx.NewCall(tok, e, args)
		case token.LBracket:
			tok := p.lex.Next()
			idx := p.parseExpr(1)
			p.expect(token.RBracket)
			e = p.ctx.NewIndex(tok, e, idx)
		case token.Dot:
			tok := p.lex.Next()
			name := p.expect(token.Word)
			e = p.ctx.NewMember(tok, e, p.ctx.Token(name).Name)
		case token.Increment, token.Decrement:
			op := postfixUnops[p.lex.PeekKind()]
			tok := p.lex.Next()
			e = p.ctx.NewUnop(tok, op, e)
		default:
			return e
		}
	}
}

// parseCallArgs parses a comma-separated argument list up to and including
// the closing `)`. Every argument is parsed to completion (including any
// nested call's own CallArg commit) before this function returns, so the
// slice it hands to NewCall is committed in one uninterrupted run: see the
// deferred-commit discussion on [ast.Context.NewCall].
func (p *Parser) parseCallArgs() []ast.ExprID {
	var args []ast.ExprID
	if p.lex.PeekKind() == token.RParen {
		p.lex.Next()
		return args
	}
	for {
		args = append(args, p.parseExpr(1))
		if p.lex.PeekKind() == token.Comma {
			p.lex.Next()
			continue
		}
		break
	}
	p.expect(token.RParen)
	return args
}
