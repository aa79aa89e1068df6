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

import (
	"dirpx.dev/hrx/activatable"
	"dirpx.dev/hrx/apis"
)

// record wraps one installed handler with its liveness flag and a
// registry-unique id. Records are freshly allocated per install and pinned
// by the guard, so two distinct records can never alias and a stale record
// always stays dereferenceable.
type record[I any] struct {
	// id is unique within the owning registry.
	id uint64
	// flag is the advisory liveness hint readers revalidate against.
	flag *activatable.Flag
	// handler is the wrapped implementation. Never mutated after install.
	handler I
	// pin keeps the record alive until process shutdown.
	pin apis.Token
}

// newRecord allocates, ids, and pins a record for h. The record starts
// active.
func (r *Registry[I]) newRecord(h I) *record[I] {
	rec := &record[I]{
		id:      r.seq.Add(1),
		flag:    activatable.NewActive(),
		handler: h,
	}
	rec.pin = r.guard.Keep(rec)
	return rec
}
