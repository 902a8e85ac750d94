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

// Package parser implements the Parse phase: recursive descent over a
// [lexer.Lexer]'s token stream for declarations and statements, and Pratt
// precedence climbing for expressions, building the [ast] arenas directly
// (there is no separate concrete-syntax tree).
package parser

import (
	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/lexer"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/source"
	"github.com/corelang/corec/token"
)

// maxScopeDepth bounds scope-stack nesting (distilled §4.3: "Maximum nesting
// is bounded (16 levels); exceeding it is fatal").
const maxScopeDepth = 16

// errParse is panicked by [Parser.fatalf] to unwind out of the recursive
// descent to [Parse] in one step, matching distilled §4.3's error model: the
// first parse error is fatal and there is no recovery, so there is no value
// in threading an error return through every production.
type errParse struct{}

// Parser holds all state for one Parse phase over a single file.
type Parser struct {
	ctx  *ast.Context
	rep  *report.Report
	lex  *lexer.Lexer
	file *source.File

	scope ast.ScopeID
	depth int

	baseTypes map[intern.ID]ast.TypeID
}

// New returns a Parser ready to parse l's token stream into ctx, reporting
// diagnostics to rep. file is the File being parsed, used only to resolve
// diagnostic offsets to a path and line/column. baseTypes is the set of
// predeclared primitive types (e.g. "int"), registered once at startup the
// same way keywords are.
func New(ctx *ast.Context, rep *report.Report, l *lexer.Lexer, file *source.File, baseTypes map[intern.ID]ast.TypeID) *Parser {
	return &Parser{
		ctx:       ctx,
		rep:       rep,
		lex:       l,
		file:      file,
		scope:     ctx.Global,
		baseTypes: baseTypes,
	}
}

// Parse consumes the entire token stream, adding top-level declarations to
// the global scope, and returns whether parsing completed without a fatal
// error. An empty file (distilled §8 boundary behavior) parses to zero
// declarations with no diagnostic.
func (p *Parser) Parse() (ok bool) {
	var members []ast.SymbolID
	if !p.ParseDecls(&members) {
		return false
	}
	p.ctx.CommitScope(p.ctx.Global, members)
	return true
}

// ParseDecls parses every top-level declaration up to EOF, appending each
// one's Symbol to *members instead of committing the global scope itself.
// [Parser.Parse] is just this plus a single commit; ParseDecls exists
// separately for package compile, which drives several Parsers (one per
// input file, per distilled §6's "list of source file paths") against the
// same Context and must commit the shared global scope exactly once, after
// every file's top-level Symbols have been appended to one members slice --
// committing once per file here would silently clobber the dense member
// run [ast.Context.CommitScope] relies on.
func (p *Parser) ParseDecls(members *[]ast.SymbolID) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParse := r.(errParse); isParse {
				ok = false
				return
			}
			panic(r)
		}
	}()
	for p.lex.PeekKind() != token.EOF {
		p.parseDecl(members)
	}
	return true
}

// expect consumes the next token, reporting a fatal syntax error (and
// unwinding via errParse) if its kind isn't want.
func (p *Parser) expect(want token.Kind) token.ID {
	id := p.lex.Next()
	t := p.ctx.Token(id)
	if t.Kind != want {
		p.fatalf(id, "expected %s, found %s", want, t.Kind)
	}
	return id
}

// fatalf reports a fatal syntax error at tok's position and unwinds parsing.
func (p *Parser) fatalf(tok token.ID, format string, args ...any) {
	t := p.ctx.Token(tok)
	line, col := p.file.LineCol(t.Offset)
	p.rep.ErrorAt(p.ctx.Strings.Value(p.file.Path), t.Offset, line, col, format, args...)
	panic(errParse{})
}

// pushScope opens a child scope of the current one and makes it current,
// enforcing the maximum nesting depth.
func (p *Parser) pushScope(kind ast.ScopeKind) ast.ScopeID {
	p.depth++
	if p.depth > maxScopeDepth {
		tok := p.lex.Peek()
		p.fatalf(tok, "scope nesting overflow: exceeded %d levels", maxScopeDepth)
	}
	id := p.ctx.NewScope(p.scope, kind)
	p.scope = id
	return id
}

// popScope restores the parent of the current scope as current.
func (p *Parser) popScope() {
	p.scope = p.ctx.Scope(p.scope).Parent
	p.depth--
}

// define allocates a Symbol for name in the current scope, reporting a
// fatal duplicate-symbol error (distilled §4.4: "Redefinition (same name,
// same scope) is fatal") if members already contains a same-named entry.
// members is the in-progress local list for the scope currently being
// built; see the deferred-commit discussion in ast/scope.go for why this
// cannot simply call [ast.Context.LookupDirect] against the arena. The
// returned Symbol's Payload is zero; the caller fills it in with
// [ast.Context.SetPayload] once the corresponding entity exists.
func (p *Parser) define(members *[]ast.SymbolID, tok token.ID, name intern.ID, kind ast.SymbolKind) ast.SymbolID {
	for _, id := range *members {
		if p.ctx.Symbol(id).Name == name {
			p.fatalf(tok, "duplicate symbol %q", p.ctx.Strings.Value(name))
		}
	}
	sym := p.ctx.DefineSymbol(p.scope, ast.Symbol{Name: name, Kind: kind, Tok: tok})
	*members = append(*members, sym)
	return sym
}
