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

// Package registry implements the lock-free, runtime-swappable handler
// registry.
//
// A Registry[I] holds the currently active implementation of an interface I.
// Readers obtain it with Get, which never blocks and never fails; writers
// replace it with Set or Reset through a single atomic exchange. Finalize
// locks the registry down: later Set/Reset calls change nothing and instead
// escalate to the configured misuse hook.
//
// Every installed handler is wrapped in a record with its own liveness flag
// and a registry-unique id, and pinned through the lifetime guard, so a
// reader holding a stale record can always still dispatch through it. A
// stale reader corrects itself on its next Get call, never within the
// current one.
package registry

import (
	"reflect"
	"sync/atomic"

	"github.com/jtolds/gls"

	"dirpx.dev/hrx/apis"
	"dirpx.dev/hrx/guard"
	"dirpx.dev/hrx/hooks"
)

// Registry dispatches an atomically swappable handler implementing I.
//
// The zero value is not usable; construct with New, which installs the
// nominated default. All methods are safe for concurrent use.
type Registry[I any] struct {
	// current is the live record. Always non-nil after New.
	current atomic.Pointer[record[I]]
	// final flips false->true exactly once and never back.
	final atomic.Bool
	// seq issues registry-unique record ids.
	seq atomic.Uint64
	// def is the nominated default handler instance.
	def I
	// defRec wraps def; reused on every Reset so the default keeps one
	// identity for the registry's whole life.
	defRec *record[I]
	// hook handles set-after-finalize misuse.
	hook apis.Hook[I]
	// guard pins every record for as long as a reader might hold it.
	guard apis.Guard
	// mgr carries per-goroutine caches for Managed callers.
	mgr *gls.ContextManager
}

// New constructs a registry with def installed as the active handler.
// Unless overridden via options, misuse terminates the process
// (hooks.Terminate) and records are pinned by the process guard.
func New[I any](def I, opts ...Option[I]) *Registry[I] {
	r := &Registry[I]{def: def, mgr: gls.NewContextManager()}
	for _, opt := range opts {
		opt(r)
	}
	if r.hook == nil {
		r.hook = hooks.Terminate[I]()
	}
	if r.guard == nil {
		r.guard = guard.Process()
	}
	r.defRec = r.newRecord(def)
	r.current.Store(r.defRec)
	return r
}

// Get returns the currently active handler.
//
// Inside a Managed context this is fast-pathed through the goroutine's
// cache; otherwise it is a single synchronizing load. Get never blocks and
// never fails: a valid handler is installed from construction onward.
func (r *Registry[I]) Get() I {
	if c, ok := r.managedCache(); ok {
		return c.Get()
	}
	return r.load().handler
}

// Set installs h as the active handler and returns the handler it replaced.
//
// Installing the handler that is already current reactivates it in place
// without deactivating anything (deactivating the only live handler would
// force every reader into a pointless reload). Otherwise the previous
// record is deactivated after the exchange; readers still holding it keep
// using it for at most one more call.
//
// After Finalize, no exchange happens: the misuse hook runs with the
// current and attempted handlers, and Set returns the zero I and false.
func (r *Registry[I]) Set(h I) (prev I, ok bool) {
	if r.final.Load() {
		r.hook.OnSetAfterFinalize(r.load().handler, h)
		var zero I
		return zero, false
	}

	rec := r.recordFor(h)
	rec.flag.Activate() // may have been deactivated earlier, always reactivate

	old := r.current.Swap(rec)
	if old != rec {
		old.flag.Deactivate()
	}
	return old.handler, true
}

// Reset reinstalls the nominated default, subject to the same finalization
// rule as Set.
func (r *Registry[I]) Reset() (prev I, ok bool) {
	return r.Set(r.def)
}

// Finalize permanently locks the registry against handler changes. It is
// idempotent; there is no way back. A Set racing with Finalize resolves
// either as accepted-then-finalized or as rejected, both of which are safe.
func (r *Registry[I]) Finalize() {
	r.final.Store(true)
}

// Finalized reports whether Finalize has been called.
func (r *Registry[I]) Finalized() bool {
	return r.final.Load()
}

// load performs the synchronizing read of the current record.
func (r *Registry[I]) load() *record[I] {
	return r.current.Load()
}

// recordFor resolves h to the record to install: the current record when h
// is the handler it already wraps, the default record when h is the
// nominated default, and a freshly pinned record otherwise.
//
// A swap racing between the identity check and the exchange degrades to
// installing a duplicate record for the same handler, which is safe: record
// identity, not handler identity, drives deactivation.
func (r *Registry[I]) recordFor(h I) *record[I] {
	if cur := r.load(); sameHandler(cur.handler, h) {
		return cur
	}
	if sameHandler(r.def, h) {
		return r.defRec
	}
	return r.newRecord(h)
}

// sameHandler reports whether a and b are the same handler instance.
// Identity is by reference; value-kind handlers are never considered the
// same instance. Type equality is checked first so that a pointer to an
// embedded first field never aliases its container.
func sameHandler[I any](a, b I) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() || av.Type() != bv.Type() {
		return false
	}
	switch av.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	default:
		return false
	}
}
