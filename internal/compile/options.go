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

package compile

import "github.com/rs/zerolog"

// Option configures a call to [Compile] or [CompileSources].
type Option func(*options)

type options struct {
	log          zerolog.Logger
	singleThread bool
}

func newOptions(opts []Option) *options {
	o := &options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger routes phase-boundary tracing (the CLI's `--debug` flag, per
// SPEC_FULL §6) through l instead of discarding it. cmd/corec passes a
// zerolog.Logger writing to stderr when `--debug` is set.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSingleThreadedAssertion enables a run-time check (SPEC_FULL
// §5) that every phase call for this Compilation happens on the goroutine
// that started it, using github.com/petermattis/goid to identify the
// calling goroutine cheaply. It is off by default because the assertion
// itself has a (small) cost and the invariant it checks is already true by
// construction for any caller that doesn't go out of its way to violate it.
func WithSingleThreadedAssertion() Option {
	return func(o *options) { o.singleThread = true }
}

func (o *options) trace(phase string) {
	o.log.Debug().Str("phase", phase).Msg("compile phase boundary")
}

func (o *options) threadGuard() *threadGuard {
	if !o.singleThread {
		return nil
	}
	return newThreadGuard()
}
