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

// Package sema implements the Resolve and Type-complete phases: binding
// every [ast.Symref] to the [ast.Symbol] its lexical scope chain names, and
// then propagating the resulting [ast.Type.IsComplete] flag to a fixed
// point.
//
// This is this compiler's analogue of this repository's own linker
// package, which binds unresolved cross-file references in a parsed proto
// descriptor to the symbol that defines them; the scope-chain walk here is
// the same idea at a much smaller scale (one translation unit, lexical
// scope instead of package/import visibility).
package sema

import (
	"github.com/corelang/corec/ast"
	"github.com/corelang/corec/source"
	"github.com/corelang/corec/token"
)

// position resolves tok to the (file, offset, line, col) tuple every
// report.Report entry point wants, the same way parser.Parser.fatalf does
// for a single in-progress file -- generalized here to any of the files in
// a multi-file compilation's source.Set, since sema runs after every file
// has been parsed.
func position(ctx *ast.Context, files *source.Set, tok token.ID) (file string, offset, line, col int) {
	t := ctx.Token(tok)
	f := files.At(t.File)
	line, col = f.LineCol(t.Offset)
	return ctx.Strings.Value(f.Path), t.Offset, line, col
}
