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

// Package token defines the lexical element produced by the Lex phase.
//
// Unlike this repository's Protobuf-oriented token model, tokens here are a
// flat stream (there is no notion of a non-leaf token spanning a matched
// delimiter pair): the grammar in the source language doesn't need it, and
// the distilled spec describes Token as a plain (file, offset, kind) tuple.
package token

import (
	"fmt"

	"github.com/corelang/corec/internal/arena"
	"github.com/corelang/corec/internal/intern"
	"github.com/corelang/corec/source"
)

// Kind identifies the lexical category of a [Token].
type Kind int8

const (
	Invalid Kind = iota
	EOF

	Word    // An identifier (keywords get their own Kw kinds below).
	Integer // A run of digits, interpreted as signed 64-bit decimal.
	String  // A quoted string literal.

	// Punctuation. `+`/`-`/`*`/`/` also double as arithmetic operators;
	// `+`/`-` additionally coalesce into Increment/Decrement.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Dot
	Comma
	Semi
	Colon
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Assign // `=`
	Eq     // `==`
	Plus
	Minus
	Star
	Slash
	Increment // `++`
	Decrement // `--`

	// Keywords. Recognized by comparing a Word token's interned name
	// against the constants in package lexer, per distilled §4.1.
	KwIf
	KwWhile
	KwFor
	KwReturn
	KwProc
	KwData
	KwArray
	KwEntity
)

//go:generate stringer -type=Kind
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Word:
		return "Word"
	case Integer:
		return "Integer"
	case String:
		return "String"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case Dot:
		return "."
	case Comma:
		return ","
	case Semi:
		return ";"
	case Colon:
		return ":"
	case Amp:
		return "&"
	case Pipe:
		return "|"
	case Caret:
		return "^"
	case Tilde:
		return "~"
	case Bang:
		return "!"
	case Assign:
		return "="
	case Eq:
		return "=="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Increment:
		return "++"
	case Decrement:
		return "--"
	case KwIf:
		return "if"
	case KwWhile:
		return "while"
	case KwFor:
		return "for"
	case KwReturn:
		return "return"
	case KwProc:
		return "proc"
	case KwData:
		return "data"
	case KwArray:
		return "array"
	case KwEntity:
		return "entity"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a lexical element: a kind, its source position, and (for the
// kinds that carry one) a payload.
//
// Per the dense-linking invariant, the token stream itself is not stored as
// a linked structure; the lexer hands tokens to the parser one at a time
// (with one token of lookahead, per distilled §4.2) and the parser is the
// one that decides which tokens become part of the permanent AST (e.g. a
// literal Expr retains its Token; a skipped `;` does not).
type Token struct {
	File   source.ID
	Offset int
	Kind   Kind

	// Name is valid for Kind == Word and for the keyword kinds; it is the
	// interned identifier or keyword spelling.
	Name intern.ID
	// Int is valid for Kind == Integer.
	Int int64
	// Text is valid for Kind == String; it is the interned, unescaped
	// string-literal contents.
	Text intern.ID
}

// ID is a handle into the token arena held by [ast.Context]; tokens that
// never outlive lexing (most punctuation) still get one, since the
// distilled spec says the Lex phase "produces" Token handles uniformly.
type ID arena.Pointer[Token]

// Nil reports whether id is the zero handle.
func (id ID) Nil() bool {
	return arena.Pointer[Token](id).Nil()
}
