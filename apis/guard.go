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

// Guard extends the lifetime of objects that other code may still reference.
//
// A registry never allocates, copies, or frees a handler; it delegates all
// lifetime concerns to a Guard. Keep pins v until the returned Token is
// released or the process-wide shutdown phase runs, whichever comes first.
// Pinned objects must remain usable for the entire pinned interval.
type Guard interface {
	// Keep pins v and returns the owning token.
	Keep(v any) Token
}

// Token is an owning handle for a single pinned object.
type Token interface {
	// ID returns a stable identifier for diagnostics.
	ID() string
	// Release drops the pin. Releasing twice is a no-op.
	Release()
}
