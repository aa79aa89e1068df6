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

// Package hooks provides the built-in misuse-hook policies invoked when a
// finalized registry rejects a handler change.
package hooks

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"dirpx.dev/hrx/apis"
)

// osExit is a seam so Terminate can be exercised in tests.
var osExit = os.Exit

// Terminate returns the default policy: write one line to stderr and exit
// the process with status 2.
//
// A silent no-op would hide a serious ordering bug in calling code, and this
// layer sits beneath any structured error handling or logging facility, so
// the message goes straight to stderr. No panic: a recovered panic would
// make the misuse silent again.
func Terminate[I any]() apis.Hook[I] {
	return apis.HookFunc[I](func(current, attempted I) {
		fmt.Fprintf(os.Stderr, "hrx(hooks): handler change rejected, registry is finalized (current %T, attempted %T)\n", current, attempted)
		osExit(2)
	})
}

// Logging returns a policy that records the rejected change through log and
// continues. For embedders that want visibility without termination.
func Logging[I any](log *zap.Logger) apis.Hook[I] {
	return apis.HookFunc[I](func(current, attempted I) {
		log.Error("handler change rejected: registry is finalized",
			zap.String("current", fmt.Sprintf("%T", current)),
			zap.String("attempted", fmt.Sprintf("%T", attempted)),
		)
	})
}

// Ignore returns a policy that does nothing. Use deliberately; a rejected
// change with this policy leaves no trace.
func Ignore[I any]() apis.Hook[I] {
	return apis.HookFunc[I](func(I, I) {})
}
