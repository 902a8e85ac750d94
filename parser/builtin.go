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
	"github.com/corelang/corec/internal/intern"
)

// PredeclaredTypes registers every base type at startup, the same way
// keywords are registered, so that parseTypeExpr's bare-identifier lookup
// never needs a forward reference. S1 ("data x int;") is the only base type
// the distilled spec's source evidence names, so "int" (8 bytes, a signed
// 64-bit word, matching the integer-literal representation) is the only
// entry; a back-end that needs more primitives adds them here.
func PredeclaredTypes(ctx *ast.Context) map[intern.ID]ast.TypeID {
	return map[intern.ID]ast.TypeID{
		ctx.Strings.Intern("int"): ctx.NewBaseType(ctx.Strings.Intern("int"), 8),
	}
}
