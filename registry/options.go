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

package registry

import "dirpx.dev/hrx/apis"

// Option is a functional option applied during New. Both knobs bind at
// construction and never change afterwards.
type Option[I any] func(*Registry[I])

// WithHook sets the misuse-hook policy invoked on set-after-finalize.
// Nil hooks are ignored, keeping the default (hooks.Terminate).
func WithHook[I any](h apis.Hook[I]) Option[I] {
	return func(r *Registry[I]) {
		if h != nil {
			r.hook = h
		}
	}
}

// WithGuard sets the lifetime guard used to pin installed records.
// Nil guards are ignored, keeping the process guard.
func WithGuard[I any](g apis.Guard) Option[I] {
	return func(r *Registry[I]) {
		if g != nil {
			r.guard = g
		}
	}
}
