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

// Package activatable provides the advisory liveness flag attached to every
// installed handler record.
//
// The flag is deliberately weak: it carries no ordering relationship with any
// other memory. A reader that observes a stale value is expected to perform a
// synchronizing reload through the registry; the flag only decides *whether*
// that reload happens, never whether the object is valid.
package activatable

import "sync/atomic"

// Flag is a single racy-but-safe boolean. The zero value is inactive.
//
// Flag must not be copied after first use; use Snapshot to capture its
// value into an independent Flag.
type Flag struct {
	active atomic.Bool
}

// NewActive returns a flag that starts out active.
func NewActive() *Flag {
	f := &Flag{}
	f.active.Store(true)
	return f
}

// Activate marks the flag active.
func (f *Flag) Activate() {
	f.active.Store(true)
}

// Deactivate marks the flag inactive.
func (f *Flag) Deactivate() {
	f.active.Store(false)
}

// IsActive reports the current value. The result may be stale by the time
// the caller acts on it; callers must treat it as a hint only.
func (f *Flag) IsActive() bool {
	return f.active.Load()
}

// Snapshot returns a new, independent Flag holding the value observed at
// this instant. The two flags share no state afterwards.
func (f *Flag) Snapshot() *Flag {
	s := &Flag{}
	s.active.Store(f.active.Load())
	return s
}
