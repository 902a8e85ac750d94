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
	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/token"
)

// parseCompoundStmt parses a `{ STMT* }` block, opening a fresh block scope
// per distilled §9's Open Question resolution ("implement with one block
// scope per compound statement"). The block's own declarations commit to
// this scope in one uninterrupted run once `}` is reached, after every
// nested statement (including any of its own nested compounds, which
// commit their own scope first) has fully parsed.
func (p *Parser) parseCompoundStmt() ast.StmtID {
	tok := p.expect(token.LBrace)
	blockScope := p.pushScope(ast.ScopeProc)

	var members []ast.SymbolID
	var children []ast.StmtID
	for p.lex.PeekKind() != token.RBrace {
		children = append(children, p.parseStmt(&members))
	}
	p.expect(token.RBrace)

	p.ctx.CommitScope(blockScope, members)
	id := p.ctx.NewCompound(tok, blockScope, children)
	p.popScope()
	return id
}

// parseStmt parses one statement. members is the enclosing block's
// in-progress scope member list, used only when this statement is itself a
// data/array declaration (a nested `{ }` opens and commits its own scope
// instead).
func (p *Parser) parseStmt(members *[]ast.SymbolID) ast.StmtID {
	switch p.lex.PeekKind() {
	case token.LBrace:
		return p.parseCompoundStmt()
	case token.KwIf:
		return p.parseIfStmt(members)
	case token.KwWhile:
		return p.parseWhileStmt(members)
	case token.KwFor:
		return p.parseForStmt(members)
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwData:
		tok := p.lex.Peek()
		d := p.parseDataDecl(members)
		return p.ctx.NewDataStmt(tok, d)
	case token.KwArray:
		tok := p.lex.Peek()
		a := p.parseArrayDecl(members)
		return p.ctx.NewArrayStmt(tok, a)
	default:
		return p.parseExprStmt()
	}
}

// parseIfStmt parses `if ( EXPR ) STMT`. The source language surface (§6)
// has no `else` keyword, so Else on the resulting Stmt is always the zero
// StmtID; [ast.Context.NewIfStmt] still takes an Else parameter because later
// language revisions (and the pretty-printer collaborator) expect the slot
// to exist even when nothing fills it.
func (p *Parser) parseIfStmt(members *[]ast.SymbolID) ast.StmtID {
	tok := p.lex.Next() // `if`
	p.expect(token.LParen)
	cond := p.parseExpr(1)
	p.expect(token.RParen)
	then := p.parseStmt(members)
	return p.ctx.NewIfStmt(tok, cond, then, ast.StmtID(0))
}

// parseWhileStmt parses `while ( EXPR ) STMT`.
func (p *Parser) parseWhileStmt(members *[]ast.SymbolID) ast.StmtID {
	tok := p.lex.Next() // `while`
	p.expect(token.LParen)
	cond := p.parseExpr(1)
	p.expect(token.RParen)
	body := p.parseStmt(members)
	return p.ctx.NewWhileStmt(tok, cond, body)
}

// parseForStmt parses `for ( STMT ; EXPR ; STMT ) STMT`. The init and post
// clauses are parsed without consuming a statement-terminating `;`
// themselves (distilled §4.3 is silent on whether STMT here includes its
// own terminator, which would make the grammar's explicit `;` separators
// redundant); instead parseForStmt itself consumes the two separators, a
// supplement recorded in DESIGN.md.
func (p *Parser) parseForStmt(members *[]ast.SymbolID) ast.StmtID {
	tok := p.lex.Next() // `for`
	p.expect(token.LParen)

	init := p.parseSimpleStmtNoSemi(members)
	p.expect(token.Semi)
	cond := p.parseExpr(1)
	p.expect(token.Semi)
	post := p.parseSimpleStmtNoSemi(members)

	p.expect(token.RParen)
	body := p.parseStmt(members)
	return p.ctx.NewForStmt(tok, init, cond, post, body)
}

// parseSimpleStmtNoSemi parses a data declaration or an expression, without
// consuming a trailing `;`, for use in a for-loop's init/post clauses.
func (p *Parser) parseSimpleStmtNoSemi(members *[]ast.SymbolID) ast.StmtID {
	if p.lex.PeekKind() == token.KwData {
		tok := p.lex.Peek()
		d := p.parseDataDeclNoSemi(members)
		return p.ctx.NewDataStmt(tok, d)
	}
	tok := p.lex.Peek()
	e := p.parseExpr(1)
	return p.ctx.NewExprStmt(tok, e)
}

// parseReturnStmt parses `return EXPR ;` or a bare `return ;`.
func (p *Parser) parseReturnStmt() ast.StmtID {
	tok := p.lex.Next() // `return`
	var e ast.ExprID
	if p.lex.PeekKind() != token.Semi {
		e = p.parseExpr(1)
	}
	p.expect(token.Semi)
	return p.ctx.NewReturnStmt(tok, e)
}

// parseExprStmt parses `EXPR ;`.
func (p *Parser) parseExprStmt() ast.StmtID {
	tok := p.lex.Peek()
	e := p.parseExpr(1)
	p.expect(token.Semi)
	return p.ctx.NewExprStmt(tok, e)
}
