/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package guard provides process-wide lifetime extension: lazily constructed
// singletons and pinned objects that stay alive until an explicit shutdown
// phase, torn down in reverse construction order.
//
// Registries obtain their own instance and every installed handler through
// this package, so a reader that cached a handler pointer can always
// dereference it, no matter how stale the cache is.
package guard

import (
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dc0d/onexit"
	"github.com/google/uuid"

	"dirpx.dev/hrx/apis"
)

// entry is one lazily constructed singleton.
type entry struct {
	once sync.Once
	val  any
	refs atomic.Int64
}

var (
	// table maps reflect.Type to *entry.
	table sync.Map
	// orderMu guards order.
	orderMu sync.Mutex
	// order records entries in construction-completion order.
	order []*entry
	// pins holds keep-alive objects keyed by token id.
	pins sync.Map // map[string]any
	// hookOnce arms the process-exit teardown exactly once.
	hookOnce sync.Once
	// shutdownDone makes Shutdown idempotent.
	shutdownDone atomic.Bool
)

// armExitHook registers Shutdown with the process exit machinery.
// Lazy so that merely importing the package spawns nothing.
func armExitHook() {
	hookOnce.Do(func() {
		onexit.Register(Shutdown)
	})
}

// Instance returns the process-wide instance of T, constructing it with ctor
// on first use, together with a token expressing the caller's interest in it.
//
// All callers observe the same instance. The instance lives until Shutdown
// runs, regardless of token releases; tokens exist so holders can declare the
// dependency and so diagnostics can count outstanding holders (see Refs).
//
// ctor must not call Instance for the same T (self-recursive construction
// deadlocks, as with any once-guarded initializer). Constructing other types
// from within ctor is fine; their teardown orders after this instance's.
func Instance[T any](ctor func() *T) (*T, apis.Token) {
	armExitHook()

	key := reflect.TypeOf((*T)(nil))
	v, _ := table.LoadOrStore(key, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.val = ctor()
		orderMu.Lock()
		order = append(order, e)
		orderMu.Unlock()
	})
	e.refs.Add(1)
	return e.val.(*T), &token{id: uuid.NewString(), release: func() {
		e.refs.Add(-1)
	}}
}

// Refs reports the number of unreleased Instance tokens for T.
// It returns 0 when no instance of T was ever constructed.
func Refs[T any]() int64 {
	key := reflect.TypeOf((*T)(nil))
	v, ok := table.Load(key)
	if !ok {
		return 0
	}
	return v.(*entry).refs.Load()
}

// Process returns the process guard used to pin arbitrary objects.
func Process() apis.Guard {
	return processGuard{}
}

// processGuard pins objects into the package-level keep-alive set.
type processGuard struct{}

// Ensure processGuard implements apis.Guard.
var _ apis.Guard = processGuard{}

// Keep pins v until the token is released or Shutdown runs.
func (processGuard) Keep(v any) apis.Token {
	armExitHook()

	id := uuid.NewString()
	pins.Store(id, v)
	return &token{id: id, release: func() {
		pins.Delete(id)
	}}
}

// token is an owning handle for one pin or one singleton reference.
type token struct {
	id       string
	release  func()
	released atomic.Bool
}

// Ensure token implements apis.Token.
var _ apis.Token = (*token)(nil)

// ID returns the token's identifier.
func (t *token) ID() string { return t.id }

// Release drops the pin. Further calls are no-ops.
func (t *token) Release() {
	if t.released.CompareAndSwap(false, true) {
		t.release()
	}
}

// Shutdown tears down all pinned objects and singletons, exactly once.
//
// Singletons are visited in reverse construction order; any that implement
// io.Closer are closed. Pinned objects are dropped without being closed
// (the pin set extends lifetime, it does not own cleanup). Intended to run
// at a defined shutdown phase of the embedding process; a process-exit hook
// invokes it as a fallback.
func Shutdown() {
	if !shutdownDone.CompareAndSwap(false, true) {
		return
	}

	pins.Range(func(key, _ any) bool {
		pins.Delete(key)
		return true
	})

	orderMu.Lock()
	entries := order
	order = nil
	orderMu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		if c, ok := entries[i].val.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
