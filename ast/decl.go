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

import "github.com/corelang/corec/internal/arena"

// Data is a `data NAME TYPE;` declaration.
type Data struct {
	Sym  SymbolID
	Type TypeID
}

// DataID is a handle into a Context's data arena.
type DataID arena.Pointer[Data]

func (c *Context) NewData(d Data) DataID { return DataID(c.datas.New(d)) }
func (c *Context) Data(id DataID) *Data  { return arena.Pointer[Data](id).In(&c.datas) }

// Array is an `array NAME [IDX_TYPE] VALUE_TYPE;` declaration: like a
// TypeArray, it carries an index type and a value type, but it also owns a
// Symbol and storage the way Data and Proc do.
type Array struct {
	Sym   SymbolID
	Index TypeID
	Value TypeID
}

// ArrayID is a handle into a Context's array arena.
type ArrayID arena.Pointer[Array]

func (c *Context) NewArray(a Array) ArrayID { return ArrayID(c.arrays.New(a)) }
func (c *Context) Array(id ArrayID) *Array  { return arena.Pointer[Array](id).In(&c.arrays) }

// Proc is a `proc NAME(PARAMS) RETURNTYPE { BODY }` declaration.
type Proc struct {
	Sym  SymbolID
	Type TypeID // TypeProc

	// Scope is the proc-kind Scope opened for this proc's parameters and
	// top-level locals (its body is a nested block scope, per the Open
	// Question resolution in SPEC_FULL §9).
	Scope ScopeID

	// FirstParam, NumParams bound this proc's dense run in the Param
	// arena. Safe to build eagerly, same reasoning as ParamType.
	FirstParam ParamID
	NumParams  int

	Body StmtID // StmtCompound
}

// ProcID is a handle into a Context's proc arena.
type ProcID arena.Pointer[Proc]

func (c *Context) Proc(id ProcID) *Proc { return arena.Pointer[Proc](id).In(&c.procs) }

// NewProc allocates a Proc. params gives, in order, each parameter's
// (Symbol, Type); the Param entities are appended in one uninterrupted
// loop so the dense run holds by construction.
func (c *Context) NewProc(sym SymbolID, typ TypeID, scope ScopeID, body StmtID, params []struct {
	Sym  SymbolID
	Type TypeID
}) ProcID {
	id := ProcID(c.procs.New(Proc{Sym: sym, Type: typ, Scope: scope, Body: body}))
	if len(params) > 0 {
		first := c.params.Len() + 1
		for i, p := range params {
			c.params.New(Param{Proc: id, Sym: p.Sym, Type: p.Type, Rank: i})
		}
		proc := c.Proc(id)
		proc.FirstParam = ParamID(arena.Untyped(first))
		proc.NumParams = len(params)
	}
	return id
}

// Params returns proc's parameters in order.
func (c *Context) Params(proc ProcID) []*Param {
	p := c.Proc(proc)
	out := make([]*Param, 0, p.NumParams)
	c.params.Range(arena.Untyped(p.FirstParam), p.NumParams, func(_ arena.Untyped, param *Param) {
		out = append(out, param)
	})
	return out
}

// ParamIDs returns proc's parameter handles in order, for callers (such as
// package parser) that need to link each Param back to the Symbol that
// declared it via [Context.SetPayload].
func (c *Context) ParamIDs(proc ProcID) []ParamID {
	p := c.Proc(proc)
	out := make([]ParamID, 0, p.NumParams)
	c.params.Range(arena.Untyped(p.FirstParam), p.NumParams, func(ptr arena.Untyped, _ *Param) {
		out = append(out, ParamID(ptr))
	})
	return out
}

// Param is one proc parameter.
type Param struct {
	Proc ProcID
	Sym  SymbolID
	Type TypeID
	Rank int
}

// ParamID is a handle into a Context's param arena.
type ParamID arena.Pointer[Param]

func (c *Context) Param(id ParamID) *Param { return arena.Pointer[Param](id).In(&c.params) }
