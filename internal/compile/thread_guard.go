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

import (
	"fmt"

	"github.com/petermattis/goid"
)

// threadGuard enforces SPEC_FULL §5's single-threadedness invariant: every
// phase call for one Compilation happens on the goroutine that started it.
// A nil *threadGuard is valid and its check is a no-op, so callers never
// need to branch on whether [WithSingleThreadedAssertion] was passed.
type threadGuard struct {
	id int64
}

func newThreadGuard() *threadGuard {
	return &threadGuard{id: goid.Get()}
}

func (g *threadGuard) check() {
	if g == nil {
		return
	}
	if cur := goid.Get(); cur != g.id {
		panic(fmt.Sprintf("compile: Compilation touched from goroutine %d, created on %d", cur, g.id))
	}
}
