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

// SymbolKind says which entity a Symbol names.
type SymbolKind int8

const (
	SymbolType SymbolKind = iota + 1
	SymbolData
	SymbolArray
	SymbolProc
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolType:
		return "type"
	case SymbolData:
		return "data"
	case SymbolArray:
		return "array"
	case SymbolProc:
		return "proc"
	case SymbolParam:
		return "param"
	default:
		return "symbol(?)"
	}
}

// Symbol is a named declaration: a type, a data variable, an array, a proc,
// or a proc parameter. Payload is the handle of the corresponding entity,
// cast from Untyped according to Kind.
type Symbol struct {
	Name  intern.ID
	Scope ScopeID
	Kind  SymbolKind

	// Payload is the declared entity this Symbol names: a TypeID, DataID,
	// ArrayID, ProcID, or ParamID packed as an Untyped pointer, selected by
	// Kind. Exactly one of the typed accessors below is valid.
	Payload arena.Untyped

	// Tok is the identifier token of the declaration, used to report
	// redefinition and other diagnostics at a precise source position.
	Tok token.ID
}

// SymbolID is a handle into a Context's symbol arena.
type SymbolID arena.Pointer[Symbol]

// Nil reports whether id is the zero handle.
func (id SymbolID) Nil() bool {
	return arena.Pointer[Symbol](id).Nil()
}

// Symbol dereferences a symbol handle.
func (c *Context) Symbol(id SymbolID) *Symbol {
	return arena.Pointer[Symbol](id).In(&c.symbols)
}

// TypeOf, DataOf, ArrayOf, ProcOf, and ParamOf reinterpret sym's Payload
// according to its Kind. Calling the wrong one for sym.Kind is a caller
// bug; they do not check.

func (c *Context) TypeOf(sym *Symbol) TypeID   { return TypeID(sym.Payload) }
func (c *Context) DataOf(sym *Symbol) DataID   { return DataID(sym.Payload) }
func (c *Context) ArrayOf(sym *Symbol) ArrayID { return ArrayID(sym.Payload) }
func (c *Context) ProcOf(sym *Symbol) ProcID   { return ProcID(sym.Payload) }
func (c *Context) ParamOf(sym *Symbol) ParamID { return ParamID(sym.Payload) }

// SetPayload fills in sym's entity handle. Declarations allocate their
// Symbol first (so the entity can record a Sym back-link) and their entity
// second, so this setter closes the cycle instead of a constructor taking
// an entity that doesn't exist yet.
func (c *Context) SetPayload(id SymbolID, payload arena.Untyped) {
	c.Symbol(id).Payload = payload
}

// Symref records an unresolved name lookup: a use of an identifier as a
// type or a value, to be resolved against the scope chain in the
// resolution phase (package sema) rather than at parse time. Per distilled
// §4.4, parsing never fails on an unresolved name; resolution does.
type Symref struct {
	Name     intern.ID
	RefScope ScopeID
	Tok      token.ID

	// Sym is the zero SymbolID until resolution succeeds, at which point it
	// names the Symbol this reference denotes.
	Sym SymbolID
}

// SymrefID is a handle into a Context's symref arena.
type SymrefID arena.Pointer[Symref]

// NewSymref records a new unresolved reference to name, used from refScope,
// at token tok.
func (c *Context) NewSymref(name intern.ID, refScope ScopeID, tok token.ID) SymrefID {
	return SymrefID(c.symrefs.New(Symref{Name: name, RefScope: refScope, Tok: tok}))
}

// Symref dereferences a symref handle.
func (c *Context) Symref(id SymrefID) *Symref {
	return arena.Pointer[Symref](id).In(&c.symrefs)
}

// Resolve sets ref's target symbol. Called once, by package sema, when the
// scope-chain walk finds a matching Symbol.
func (c *Context) Resolve(id SymrefID, sym SymbolID) {
	c.Symref(id).Sym = sym
}

// NumSymrefs returns the number of Symrefs allocated so far, letting
// package sema sweep every Symref by handle (1..NumSymrefs()) without the
// arena itself being exported.
func (c *Context) NumSymrefs() int {
	return c.symrefs.Len()
}
