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
)

// TypeKind discriminates the variants of Type. This is the literal kind
// set from distilled §3 ({base, entity, array, proc, reference}); nothing
// was added or removed.
type TypeKind int8

const (
	// TypeBase is a predeclared primitive such as int, registered at
	// startup the same way keywords are (see package lexer's keyword
	// table and [Context.NewBaseType]).
	TypeBase TypeKind = iota + 1
	// TypeEntity is a named wrapper introduced by `entity NAME TYPE;`:
	// Name is the entity's own name, Elem its wrapped (inner) type.
	TypeEntity
	// TypeArray is an `array[INDEX]VALUE` type: Elem is the index type,
	// Return is the value type (reusing Return rather than adding a
	// dedicated field, since TypeProc never overlaps with TypeArray).
	TypeArray
	TypeProc
	// TypeReference is a `^NAME` type, or any other named-type use
	// resolved through the scope chain rather than bound eagerly: Ref is
	// the Symref naming the target, Resolved is filled in by type
	// completion once Ref resolves to a Symbol of kind type.
	TypeReference
)

func (k TypeKind) String() string {
	switch k {
	case TypeBase:
		return "base"
	case TypeEntity:
		return "entity"
	case TypeArray:
		return "array"
	case TypeProc:
		return "proc"
	case TypeReference:
		return "reference"
	default:
		return "type(?)"
	}
}

// Type is one node of the type graph. Which fields are meaningful depends
// on Kind:
//
//   - TypeBase: Name, Size.
//   - TypeEntity: Name, Elem (the wrapped type).
//   - TypeArray: Elem (index type), Return (value type).
//   - TypeProc: Return (result type), and [FirstParamType, NumParamTypes)
//     into the ParamType arena.
//   - TypeReference: Ref (the Symref naming the target type), Resolved
//     (the zero TypeID until type completion fills it in).
//
// IsComplete starts true for TypeBase and false for every other kind; it
// is raised to true by the type-completion fixed point (distilled §4.5)
// once everything it transitively depends on is itself complete.
type Type struct {
	Kind       TypeKind
	IsComplete bool

	Name intern.ID
	Size int

	Elem   TypeID
	Return TypeID

	FirstParamType ParamTypeID
	NumParamTypes  int

	Ref      SymrefID
	Resolved TypeID
}

// TypeID is a handle into a Context's type arena.
type TypeID arena.Pointer[Type]

// Nil reports whether id is the zero handle.
func (id TypeID) Nil() bool {
	return arena.Pointer[Type](id).Nil()
}

// ParamType is one (procType, paramType, rank) tuple recording the rank'th
// parameter type of a TypeProc. A proc's parameter types are all known and
// appended in one uninterrupted loop right after its parameter list
// finishes parsing (parameter types are never themselves a nested
// container), so the dense run is safe to build eagerly; see
// [Context.NewProcType].
type ParamType struct {
	ProcType TypeID
	Type     TypeID
	Rank     int
}

// ParamTypeID is a handle into a Context's param-type arena.
type ParamTypeID arena.Pointer[ParamType]

// NewBaseType allocates a predeclared primitive type. Called once per
// primitive at parser/compilation startup (see package parser), never by
// user code parsing a declaration.
func (c *Context) NewBaseType(name intern.ID, size int) TypeID {
	return TypeID(c.types.New(Type{Kind: TypeBase, IsComplete: true, Name: name, Size: size}))
}

// NewEntityType allocates an incomplete entity type named name, wrapping
// elem.
func (c *Context) NewEntityType(name intern.ID, elem TypeID) TypeID {
	return TypeID(c.types.New(Type{Kind: TypeEntity, Name: name, Elem: elem}))
}

// NewArrayType allocates an incomplete array type indexed by index, whose
// element type is value.
func (c *Context) NewArrayType(index, value TypeID) TypeID {
	return TypeID(c.types.New(Type{Kind: TypeArray, Elem: index, Return: value}))
}

// NewReferenceType allocates an incomplete reference type for ref, a
// Symref naming the target type; resolution and completion fill in
// Resolved and IsComplete.
func (c *Context) NewReferenceType(ref SymrefID) TypeID {
	return TypeID(c.types.New(Type{Kind: TypeReference, Ref: ref}))
}

// NewProcType allocates an incomplete proc type with the given return type
// and parameter types, in order. Safe to call eagerly (see ParamType's doc
// comment): no recursive parse can interleave another ParamType append
// between the ones this call makes.
func (c *Context) NewProcType(ret TypeID, params []TypeID) TypeID {
	id := TypeID(c.types.New(Type{Kind: TypeProc, Return: ret}))
	if len(params) == 0 {
		return id
	}
	first := c.paramTypes.Len() + 1
	for i, p := range params {
		c.paramTypes.New(ParamType{ProcType: id, Type: p, Rank: i})
	}
	t := c.Type(id)
	t.FirstParamType = ParamTypeID(arena.Untyped(first))
	t.NumParamTypes = len(params)
	return id
}

// Type dereferences a type handle.
func (c *Context) Type(id TypeID) *Type {
	return arena.Pointer[Type](id).In(&c.types)
}

// ParamTypes returns a TypeProc's parameter types in order.
func (c *Context) ParamTypes(procType TypeID) []TypeID {
	t := c.Type(procType)
	out := make([]TypeID, 0, t.NumParamTypes)
	c.paramTypes.Range(arena.Untyped(t.FirstParamType), t.NumParamTypes, func(_ arena.Untyped, pt *ParamType) {
		out = append(out, pt.Type)
	})
	return out
}

// NumTypes returns the number of Types allocated so far, letting package
// sema sweep the entire type arena by handle (1..NumTypes()) during the
// completion fixed point without the arena itself being exported.
func (c *Context) NumTypes() int {
	return c.types.Len()
}
