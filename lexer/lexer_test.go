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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/lexer"
	"github.com/corelang/corec/report"
	"github.com/corelang/corec/source"
	"github.com/corelang/corec/token"
)

func lex(t *testing.T, src string) ([]token.Kind, *report.Report) {
	t.Helper()
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	var files source.Set
	var rep report.Report

	file := files.FromBytes(strings, "t.cc", []byte(src))
	l := lexer.New(ctx, &rep, &files, file)

	var kinds []token.Kind
	for {
		id := l.Next()
		tok := ctx.Token(id)
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return kinds, &rep
}

func TestPunctuationAndDoubling(t *testing.T) {
	kinds, rep := lex(t, "+ ++ - -- = == ( ) { } [ ] ; , . : & | ^ ~ ! * /")
	require.False(t, rep.HasErrors())
	assert.Equal(t, []token.Kind{
		token.Plus, token.Increment, token.Minus, token.Decrement,
		token.Assign, token.Eq, token.LParen, token.RParen,
		token.LBrace, token.RBrace, token.LBracket, token.RBracket,
		token.Semi, token.Comma, token.Dot, token.Colon,
		token.Amp, token.Pipe, token.Caret, token.Tilde, token.Bang,
		token.Star, token.Slash, token.EOF,
	}, kinds)
}

func TestKeywordsVsIdents(t *testing.T) {
	kinds, rep := lex(t, "if while for return proc data array entity foo")
	require.False(t, rep.HasErrors())
	assert.Equal(t, []token.Kind{
		token.KwIf, token.KwWhile, token.KwFor, token.KwReturn,
		token.KwProc, token.KwData, token.KwArray, token.KwEntity,
		token.Word, token.EOF,
	}, kinds)
}

func TestIntegerLiteral(t *testing.T) {
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	var files source.Set
	var rep report.Report
	file := files.FromBytes(strings, "t.cc", []byte("12345"))
	l := lexer.New(ctx, &rep, &files, file)

	id := l.Next()
	tok := ctx.Token(id)
	require.Equal(t, token.Integer, tok.Kind)
	assert.Equal(t, int64(12345), tok.Int)
}

func TestIntegerOverflowIsLexicalError(t *testing.T) {
	_, rep := lex(t, "99999999999999999999")
	assert.True(t, rep.HasErrors())
}

func TestLineCommentSkipped(t *testing.T) {
	kinds, rep := lex(t, "data // a comment\nx")
	require.False(t, rep.HasErrors())
	assert.Equal(t, []token.Kind{token.KwData, token.Word, token.EOF}, kinds)
}

func TestPeekDoesNotConsume(t *testing.T) {
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	var files source.Set
	var rep report.Report
	file := files.FromBytes(strings, "t.cc", []byte("data"))
	l := lexer.New(ctx, &rep, &files, file)

	first := l.Peek()
	second := l.Peek()
	assert.Equal(t, first, second)
	assert.Equal(t, first, l.Next())
}

func TestStringEscapes(t *testing.T) {
	strings := intern.NewTable()
	ctx := ast.NewContext(strings)
	var files source.Set
	var rep report.Report
	file := files.FromBytes(strings, "t.cc", []byte(`"a\nb"`))
	l := lexer.New(ctx, &rep, &files, file)

	id := l.Next()
	tok := ctx.Token(id)
	require.False(t, rep.HasErrors())
	require.Equal(t, token.String, tok.Kind)
	assert.Equal(t, "a\nb", strings.Value(tok.Text))
}
