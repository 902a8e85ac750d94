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

// Command corec is the front-end driver: it glob-expands its file
// arguments, reads them concurrently, and runs the five-phase pipeline in
// package compile over the result, printing diagnostics to stderr.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/corelang/corec/internal/compile"
	"github.com/corelang/corec/report"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main's testable body: it never calls os.Exit itself, so it can be
// driven from a test with an arbitrary argv. Only [main] calls os.Exit, per
// distilled §6 ("the lexer terminates the process" belongs to the CLI
// alone, never a library phase).
func run(args []string) int {
	var debug bool
	code := 0

	cmd := &cobra.Command{
		Use:   "corec [flags] file...",
		Short: "Compile corelang source files through Parse, Resolve, and Complete",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, globs []string) error {
			code = compileGlobs(globs, debug)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "trace each compile phase boundary to stderr")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return code
}

// compileGlobs expands every argument as a doublestar pattern (a bare path
// with no metacharacters matches only itself), reads the matches
// concurrently, and compiles the result. It returns the process exit code:
// 0 on a clean compile, 1 on any expansion, I/O, or diagnostic failure.
func compileGlobs(globs []string, debug bool) int {
	paths, err := expandGlobs(globs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sources, readErrs := readAll(paths)
	if len(readErrs) > 0 {
		var rep report.Report
		for _, e := range readErrs {
			rep.Errorf("%v", e)
		}
		rep.WriteTo(os.Stderr, nil)
		return 1
	}

	var opts []compile.Option
	if debug {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts = append(opts, compile.WithLogger(log))
	}

	_, rep, err := compile.CompileSources(sources, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	lines := lineIndex(sources)
	rep.WriteTo(os.Stderr, func(file string, line int) (string, bool) {
		ls, ok := lines[file]
		if !ok || line < 1 || line > len(ls) {
			return "", false
		}
		return ls[line-1], true
	})

	if rep.HasErrors() {
		return 1
	}
	return 0
}

// expandGlobs resolves every argument against the working directory with
// doublestar, preserving argument order and de-duplicating matches shared
// by more than one pattern. An argument that matches nothing on disk, with
// or without glob metacharacters, is passed through unchanged, so that a
// typo'd single-file argument still reaches readAll and is reported as the
// usual I/O failure rather than silently vanishing here.
func expandGlobs(globs []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("corec: invalid glob pattern %q", g)
		}
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			return nil, fmt.Errorf("corec: %q: %w", g, err)
		}
		if len(matches) == 0 {
			matches = []string{g}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

// readAll loads every path's bytes concurrently with errgroup (SPEC_FULL
// §5/§6) and returns them in argument order, ready for
// [compile.CompileSources] -- the concurrency lives entirely here, outside the five ordered
// compile phases. Unlike [compile.Compile], a read failure here does not
// abort the other in-flight reads; every failure is collected and reported
// together once all goroutines finish.
func readAll(paths []string) ([]compile.Source, []error) {
	sources := make([]compile.Source, len(paths))
	errs := make([]error, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				errs[i] = fmt.Errorf("cannot read %s: %w", path, err)
				return nil
			}
			sources[i] = compile.Source{Path: path, Data: data}
			return nil
		})
	}
	_ = g.Wait() // the per-file goroutines above never return an error themselves

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return sources, failed
}

func lineIndex(sources []compile.Source) map[string][]string {
	idx := make(map[string][]string, len(sources))
	for _, s := range sources {
		idx[s.Path] = strings.Split(string(s.Data), "\n")
	}
	return idx
}
