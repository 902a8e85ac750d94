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

// Package lexer implements the Lex phase: turning a [source.File]'s bytes
// into a stream of [token.Token] handles.
//
// Unlike this repository's hand-rolled Protobuf lexer, which tokenizes an
// entire file up front into a slice, this one is pull-based: the parser
// calls [Lexer.Next] one token at a time, with a single token of
// lookahead cached internally, matching the distilled spec's description
// of the lexer/parser boundary ("one character, and at most one token, of
// lookahead").
package lexer

import (
	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/source"
	"github.com/corelang/corec/token"
)

// keyword interns every reserved word exactly once and maps its
// intern.ID back to the Kind it spells, so recognizing a keyword is an
// intern.ID equality check (distilled §4.1: "keyword recognition is a
// comparison of interned string handles, not a string comparison") rather
// than a string switch.
type keywords struct {
	ids map[intern.ID]token.Kind
}

func newKeywords(strings *intern.Table) *keywords {
	k := &keywords{ids: make(map[intern.ID]token.Kind, 8)}
	for word, kind := range map[string]token.Kind{
		"if":     token.KwIf,
		"while":  token.KwWhile,
		"for":    token.KwFor,
		"return": token.KwReturn,
		"proc":   token.KwProc,
		"data":   token.KwData,
		"array":  token.KwArray,
		"entity": token.KwEntity,
	} {
		k.ids[strings.Intern(word)] = kind
	}
	return k
}

// Lexer tokenizes one File's bytes.
type Lexer struct {
	ctx  *ast.Context
	rep  *report.Report
	file source.ID
	src  *source.File
	kw   *keywords

	pos int

	lookahead   *token.Token
	lookaheadID token.ID
}

// New returns a Lexer over file's bytes, ready to produce tokens.
func New(ctx *ast.Context, rep *report.Report, files *source.Set, file source.ID) *Lexer {
	return &Lexer{
		ctx:  ctx,
		rep:  rep,
		file: file,
		src:  files.At(file),
		kw:   newKeywords(ctx.Strings),
	}
}

// Peek returns the next token without consuming it, lexing it the first
// time it is requested and caching the result.
func (l *Lexer) Peek() token.ID {
	if l.lookahead == nil {
		id, tok := l.lex()
		l.lookaheadID, l.lookahead = id, &tok
	}
	return l.lookaheadID
}

// PeekKind is a convenience for Peek combined with a token dereference,
// which the parser does constantly while deciding which production to
// take.
func (l *Lexer) PeekKind() token.Kind {
	id := l.Peek()
	return l.ctx.Token(id).Kind
}

// Next consumes and returns the next token, lexing it if Peek was not
// already called.
func (l *Lexer) Next() token.ID {
	id := l.Peek()
	l.lookahead = nil
	return id
}

func (l *Lexer) bytes() []byte { return l.src.Bytes }

func (l *Lexer) cur() byte {
	if l.pos >= len(l.bytes()) {
		return 0
	}
	return l.bytes()[l.pos]
}

func (l *Lexer) at(offset int) byte {
	p := l.pos + offset
	if p >= len(l.bytes()) {
		return 0
	}
	return l.bytes()[p]
}

func (l *Lexer) emit(start int, kind token.Kind) (token.ID, token.Token) {
	t := token.Token{File: l.file, Offset: start, Kind: kind}
	return l.ctx.NewToken(t), t
}

func (l *Lexer) emitToken(t token.Token) (token.ID, token.Token) {
	return l.ctx.NewToken(t), t
}

func (l *Lexer) errorf(offset int, format string, args ...any) {
	line, col := l.src.LineCol(offset)
	l.rep.ErrorAt(l.pathString(), offset, line, col, format, args...)
}

func (l *Lexer) pathString() string {
	return l.ctx.Strings.Value(l.src.Path)
}

// lex produces the single next token, skipping whitespace and comments
// first. A lexical error is reported through l.rep and an Invalid token is
// returned; no production of the parser accepts an Invalid token, so parsing
// stops there: per SPEC_FULL §4.2, lexer failures propagate as diagnostics,
// not panics.
func (l *Lexer) lex() (token.ID, token.Token) {
	l.skipTrivia()

	start := l.pos
	if l.pos >= len(l.bytes()) {
		return l.emit(start, token.EOF)
	}

	c := l.cur()
	switch {
	case isDigit(c):
		return l.lexInt(start)
	case isIdentStart(c):
		return l.lexWord(start)
	case c == '"':
		return l.lexString(start)
	}

	switch c {
	case '(':
		l.pos++
		return l.emit(start, token.LParen)
	case ')':
		l.pos++
		return l.emit(start, token.RParen)
	case '[':
		l.pos++
		return l.emit(start, token.LBracket)
	case ']':
		l.pos++
		return l.emit(start, token.RBracket)
	case '{':
		l.pos++
		return l.emit(start, token.LBrace)
	case '}':
		l.pos++
		return l.emit(start, token.RBrace)
	case '.':
		l.pos++
		return l.emit(start, token.Dot)
	case ',':
		l.pos++
		return l.emit(start, token.Comma)
	case ';':
		l.pos++
		return l.emit(start, token.Semi)
	case ':':
		l.pos++
		return l.emit(start, token.Colon)
	case '&':
		l.pos++
		return l.emit(start, token.Amp)
	case '|':
		l.pos++
		return l.emit(start, token.Pipe)
	case '^':
		l.pos++
		return l.emit(start, token.Caret)
	case '~':
		l.pos++
		return l.emit(start, token.Tilde)
	case '!':
		l.pos++
		return l.emit(start, token.Bang)
	case '=':
		l.pos++
		if l.cur() == '=' {
			l.pos++
			return l.emit(start, token.Eq)
		}
		return l.emit(start, token.Assign)
	case '+':
		l.pos++
		if l.cur() == '+' {
			l.pos++
			return l.emit(start, token.Increment)
		}
		return l.emit(start, token.Plus)
	case '-':
		l.pos++
		if l.cur() == '-' {
			l.pos++
			return l.emit(start, token.Decrement)
		}
		return l.emit(start, token.Minus)
	case '*':
		l.pos++
		return l.emit(start, token.Star)
	case '/':
		l.pos++
		return l.emit(start, token.Slash)
	}

	l.errorf(start, "unexpected character %q", c)
	l.pos++
	return l.emit(start, token.Invalid)
}

// skipTrivia advances past whitespace and `//` line comments; this
// language has no block comments, matching the distilled spec's minimal
// lexical surface.
func (l *Lexer) skipTrivia() {
	for {
		switch l.cur() {
		case ' ', '\t', '\r', '\n':
			l.pos++
			continue
		case '/':
			if l.at(1) == '/' {
				for l.pos < len(l.bytes()) && l.cur() != '\n' {
					l.pos++
				}
				continue
			}
		}
		return
	}
}

func (l *Lexer) lexWord(start int) (token.ID, token.Token) {
	for isIdentCont(l.cur()) {
		l.pos++
	}
	name := l.ctx.Strings.Intern(string(l.bytes()[start:l.pos]))
	if kind, ok := l.kw.ids[name]; ok {
		return l.emitToken(token.Token{File: l.file, Offset: start, Kind: kind, Name: name})
	}
	return l.emitToken(token.Token{File: l.file, Offset: start, Kind: token.Word, Name: name})
}

// lexInt scans a run of decimal digits and reports an error rather than
// silently wrapping if the value overflows int64, per distilled §4.2's
// "integer literals outside representable range are a lexical error".
func (l *Lexer) lexInt(start int) (token.ID, token.Token) {
	for isDigit(l.cur()) {
		l.pos++
	}
	digits := string(l.bytes()[start:l.pos])

	var v int64
	overflowed := false
	for i := 0; i < len(digits); i++ {
		d := int64(digits[i] - '0')
		if v > (1<<63-1-d)/10 {
			overflowed = true
			break
		}
		v = v*10 + d
	}
	if overflowed {
		l.errorf(start, "integer literal %s out of range", digits)
		return l.emit(start, token.Invalid)
	}
	return l.emitToken(token.Token{File: l.file, Offset: start, Kind: token.Integer, Int: v})
}

// lexString scans a `"..."` literal with backslash escapes for \n, \t, \\,
// and \". An unterminated string or an unrecognized escape is a lexical
// error.
func (l *Lexer) lexString(start int) (token.ID, token.Token) {
	l.pos++ // opening quote
	var out []byte
	for {
		if l.pos >= len(l.bytes()) {
			l.errorf(start, "unterminated string literal")
			return l.emit(start, token.Invalid)
		}
		c := l.cur()
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			esc := l.cur()
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				l.errorf(l.pos, "unrecognized escape %q", esc)
			}
			l.pos++
			continue
		}
		out = append(out, c)
		l.pos++
	}
	return l.emitToken(token.Token{
		File: l.file, Offset: start, Kind: token.String,
		Text: l.ctx.Strings.Intern(string(out)),
	})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
