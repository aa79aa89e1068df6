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

// Package hrx provides a lock-free, runtime-swappable handler registry.
//
// hrx lets call sites depend on an abstract interface whose concrete
// implementation can be substituted at startup, during tests, or by an
// embedding application, and then locked down so that no further
// substitution is possible once the process reaches a stable operating
// state. It is the indirection layer beneath pluggable error-reporting
// strategies, queue-overflow policies, and similar swap-at-boot contracts.
//
// # Design
//
// The core is registry.Registry[I]: an atomic pointer to the record wrapping
// the currently active implementation of I, plus a monotonic finalized flag.
//
//   - Readers call Get. It is wait-free: at most one atomic load, no lock,
//     no retry loop. Under registry.Managed, a goroutine-local cache skips
//     even that load while the cached handler's liveness flag still reads
//     active.
//
//   - Writers call Set or Reset. The new handler is wrapped in a freshly
//     pinned record, activated, and exchanged in with a single atomic swap;
//     the outgoing record is deactivated afterwards. Re-installing the
//     handler that is already current reactivates it in place instead.
//
//   - A reader's cache may lag the true current handler by at most one call:
//     the call straddling a swap may still return the superseded handler,
//     and the next call resynchronizes. This bound is the contract; there is
//     no retry until consistent, so a misbehaving writer can never starve a
//     reader.
//
// Finalize flips the registry into its terminal state. From then on Set and
// Reset change nothing; they escalate to a misuse-hook policy instead of
// silently ignoring what is almost certainly an ordering bug in calling
// code. The default policy (hooks.Terminate) ends the process; tests and
// embedders can substitute hooks.Logging, hooks.Ignore, or their own.
//
// Handler lifetime is delegated to the guard package: every record ever
// installed, and every registry itself, stays pinned until the process-wide
// shutdown phase, so a stale cached record is always safe to dispatch
// through.
//
// # Global API
//
// This package maintains exactly one registry per interface type,
// process-wide, created lazily:
//
//	reg := hrx.Nominate[ErrorReporter](&StderrReporter{})
//	...
//	hrx.Get[ErrorReporter]().Report(err)   // hot path
//	hrx.Set[ErrorReporter](&testReporter) // swap, e.g. in tests
//	hrx.Reset[ErrorReporter]()            // back to the default
//	hrx.Finalize[ErrorReporter]()         // lock down
//
// Get, Set, Reset, and Finalize panic for an interface type that was never
// nominated; a registry without a default cannot satisfy its never-fails
// read contract.
//
// # Scope
//
// hrx is intentionally small. It is not a publish/subscribe mechanism and
// not a configuration system; it resolves exactly one question, "which
// implementation of this interface is currently in effect", with bounded
// staleness and without ever blocking a reader.
package hrx
