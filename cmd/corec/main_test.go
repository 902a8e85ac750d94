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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunExitsZeroOnCleanCompile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cc", "data x int;")

	assert.Equal(t, 0, run([]string{path}))
}

func TestRunExitsNonZeroOnUnresolvedSymbol(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cc", "data a ^missing;")

	assert.Equal(t, 1, run([]string{path}))
}

func TestRunExitsNonZeroOnMissingFile(t *testing.T) {
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "nope.cc")}))
}

func TestRunExpandsGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cc", "data a int;")
	writeFile(t, dir, "b.cc", "data b int;")

	assert.Equal(t, 0, run([]string{filepath.Join(dir, "*.cc")}))
}

func TestRunWithDebugFlagStillCompiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cc", "data x int;")

	assert.Equal(t, 0, run([]string{"--debug", path}))
}

func TestRunRequiresAtLeastOneFile(t *testing.T) {
	assert.Equal(t, 1, run([]string{}))
}
