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

package hrx

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/hrx/guard"
	"dirpx.dev/hrx/registry"
)

// createMu serializes registry creation so exactly one registry per
// interface type is ever published.
var createMu sync.Mutex

// regs maps the interface key type to its *registry.Registry[I].
var regs sync.Map // map[reflect.Type]any

// key identifies the registry slot for interface type I.
func key[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil))
}

// Nominate returns the process-wide registry for interface type I, creating
// it on first call with def as the default handler.
//
// The default and any options bind on the creating call only; later calls
// return the existing registry and ignore their arguments. The registry is
// itself pinned through the lifetime guard, like every handler it installs.
func Nominate[I any](def I, opts ...registry.Option[I]) *registry.Registry[I] {
	k := key[I]()

	// Fast read path, no locking.
	if v, ok := regs.Load(k); ok {
		return v.(*registry.Registry[I])
	}

	createMu.Lock()
	defer createMu.Unlock()

	// Re-check under lock in case another goroutine created meanwhile.
	if v, ok := regs.Load(k); ok {
		return v.(*registry.Registry[I])
	}

	r, _ := guard.Instance(func() *registry.Registry[I] {
		return registry.New(def, opts...)
	})
	regs.Store(k, r)
	return r
}

// For returns the registry for I. It panics when no default was nominated:
// dispatching through a registry that cannot fall back to anything is a
// programming error, not a recoverable condition.
func For[I any]() *registry.Registry[I] {
	v, ok := regs.Load(key[I]())
	if !ok {
		panic(fmt.Sprintf("hrx: no registry nominated for %s", key[I]().Elem()))
	}
	return v.(*registry.Registry[I])
}

// Get returns the currently active handler for I.
func Get[I any]() I {
	return For[I]().Get()
}

// Set installs h as the active handler for I and returns the previous one.
func Set[I any](h I) (prev I, ok bool) {
	return For[I]().Set(h)
}

// Reset reinstalls the nominated default handler for I.
func Reset[I any]() (prev I, ok bool) {
	return For[I]().Reset()
}

// Finalize permanently locks the registry for I against handler changes.
func Finalize[I any]() {
	For[I]().Finalize()
}
