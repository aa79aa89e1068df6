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

package apis

// Hook is the policy invoked when a caller attempts to change the active
// handler after the registry has been finalized. It runs synchronously on
// the thread attempting the late mutation.
//
// Implementations must not call Set or Reset on any registry from within
// OnSetAfterFinalize; doing so can recurse without bound. The default
// policy terminates the process and must stay free of any higher-level
// error-handling facility, since this primitive sits beneath such layers.
type Hook[I any] interface {
	// OnSetAfterFinalize receives the handler that remains current and the
	// handler whose installation was rejected.
	OnSetAfterFinalize(current, attempted I)
}

// HookFunc adapts a plain function to a Hook.
type HookFunc[I any] func(current, attempted I)

// OnSetAfterFinalize calls f(current, attempted).
func (f HookFunc[I]) OnSetAfterFinalize(current, attempted I) {
	f(current, attempted)
}
