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
	"github.com/corelang/corec/internal/arena"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/token"
)

// parseDecl parses one top-level declaration (data, array, proc, or entity)
// and registers its Symbol in members, the caller's in-progress scope
// member list.
func (p *Parser) parseDecl(members *[]ast.SymbolID) {
	switch p.lex.PeekKind() {
	case token.KwData:
		p.parseDataDecl(members)
	case token.KwArray:
		p.parseArrayDecl(members)
	case token.KwProc:
		p.parseProcDecl(members)
	case token.KwEntity:
		p.parseEntityDecl(members)
	default:
		tok := p.lex.Peek()
		p.fatalf(tok, "expected declaration, found %s", p.ctx.Token(tok).Kind)
	}
}

// parseDataDecl parses `data NAME TYPE;`.
func (p *Parser) parseDataDecl(members *[]ast.SymbolID) ast.DataID {
	id := p.parseDataDeclNoSemi(members)
	p.expect(token.Semi)
	return id
}

// parseDataDeclNoSemi parses `data NAME TYPE` without consuming a trailing
// `;`, for use both by parseDataDecl and by a for-loop's init/post clause
// (see parseSimpleStmtNoSemi in stmt.go). The grammar has no initializer
// form (distilled §4.3: `data NAME TYPE;`); a for-loop that wants to seed a
// variable's value uses a separate assignment expression, as
// parseSimpleStmtNoSemi's other branch (a bare EXPR) already allows.
func (p *Parser) parseDataDeclNoSemi(members *[]ast.SymbolID) ast.DataID {
	p.lex.Next() // `data`
	nameTok := p.expect(token.Word)
	name := p.ctx.Token(nameTok).Name
	sym := p.define(members, nameTok, name, ast.SymbolData)

	tp := p.parseTypeExpr()

	id := p.ctx.NewData(ast.Data{Sym: sym, Type: tp})
	p.ctx.SetPayload(sym, arena.Untyped(id))
	return id
}

// parseArrayDecl parses `array NAME [IDX_TYPE] VALUE_TYPE;`.
func (p *Parser) parseArrayDecl(members *[]ast.SymbolID) ast.ArrayID {
	p.lex.Next() // `array`
	nameTok := p.expect(token.Word)
	name := p.ctx.Token(nameTok).Name
	sym := p.define(members, nameTok, name, ast.SymbolArray)

	p.expect(token.LBracket)
	index := p.parseTypeExpr()
	p.expect(token.RBracket)
	value := p.parseTypeExpr()
	p.expect(token.Semi)

	id := p.ctx.NewArray(ast.Array{Sym: sym, Index: index, Value: value})
	p.ctx.SetPayload(sym, arena.Untyped(id))
	return id
}

// parseEntityDecl parses `entity NAME TYPE;`, valid at global scope only.
func (p *Parser) parseEntityDecl(members *[]ast.SymbolID) {
	tok := p.lex.Next() // `entity`
	if p.scope != p.ctx.Global {
		p.fatalf(tok, "entity declarations are only allowed at global scope")
	}
	nameTok := p.expect(token.Word)
	name := p.ctx.Token(nameTok).Name
	sym := p.define(members, nameTok, name, ast.SymbolType)

	elem := p.parseTypeExpr()
	p.expect(token.Semi)

	id := p.ctx.NewEntityType(name, elem)
	p.ctx.SetPayload(sym, arena.Untyped(id))
}

// parseProcDecl parses `proc NAME ( (NAME TYPE)* ) RET_TYPE { STMTS }`.
func (p *Parser) parseProcDecl(members *[]ast.SymbolID) {
	p.lex.Next() // `proc`
	nameTok := p.expect(token.Word)
	name := p.ctx.Token(nameTok).Name
	procSym := p.define(members, nameTok, name, ast.SymbolProc)

	procScope := p.pushScope(ast.ScopeProc)

	p.expect(token.LParen)
	var paramMembers []ast.SymbolID
	var paramTypes []ast.TypeID
	type paramPair struct {
		Sym  ast.SymbolID
		Type ast.TypeID
	}
	var pairs []paramPair
	if p.lex.PeekKind() != token.RParen {
		for {
			pNameTok := p.expect(token.Word)
			pName := p.ctx.Token(pNameTok).Name
			pSym := p.define(&paramMembers, pNameTok, pName, ast.SymbolParam)
			pType := p.parseTypeExpr()
			pairs = append(pairs, paramPair{Sym: pSym, Type: pType})
			paramTypes = append(paramTypes, pType)
			if p.lex.PeekKind() == token.Comma {
				p.lex.Next()
				continue
			}
			break
		}
	}
	p.expect(token.RParen)
	// Nothing else can append to procScope's own symbol run: the body's
	// declarations land in a nested block scope, not this one. Safe to
	// commit now, before the body (and its own nested scopes) are parsed.
	p.ctx.CommitScope(procScope, paramMembers)

	retType := p.parseTypeExpr()
	procType := p.ctx.NewProcType(retType, paramTypes)

	body := p.parseCompoundStmt()

	params := make([]struct {
		Sym  ast.SymbolID
		Type ast.TypeID
	}, len(pairs))
	for i, pr := range pairs {
		params[i].Sym = pr.Sym
		params[i].Type = pr.Type
	}
	procID := p.ctx.NewProc(procSym, procType, procScope, body, params)
	p.ctx.SetPayload(procSym, arena.Untyped(procID))
	p.ctx.Scope(procScope).Proc = procID

	for i, id := range p.ctx.ParamIDs(procID) {
		p.ctx.SetPayload(pairs[i].Sym, arena.Untyped(id))
	}

	p.popScope()
}
