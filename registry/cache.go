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
	"sync/atomic"

	"github.com/jtolds/gls"
)

// Cache is a read-side handle holding the last handler record a caller
// observed. Get revalidates the cached record against its liveness flag and
// reloads from the registry at most once per call.
//
// A Cache is intended to be owned by a single worker, but is safe for
// concurrent use; sharing one merely shares its staleness.
type Cache[I any] struct {
	r   *Registry[I]
	rec atomic.Pointer[record[I]]
}

// Cached returns an empty cache bound to r. The first Get populates it with
// a synchronizing load.
func (r *Registry[I]) Cached() *Cache[I] {
	return &Cache[I]{r: r}
}

// Get returns the active handler, fast-pathed through the cache.
//
// When the cached record is missing or no longer active, Get reloads from
// the registry exactly once and returns whatever that load produced, even
// if a racing swap has already superseded it again. No retry loop: a
// misbehaving writer must not be able to starve readers, and the very next
// Get corrects any remaining staleness.
func (c *Cache[I]) Get() I {
	rec := c.rec.Load()
	if rec == nil || !rec.flag.IsActive() {
		rec = c.r.load()
		c.rec.Store(rec)
	}
	return rec.handler
}

// Managed runs fn with a fresh per-goroutine cache installed in goroutine
// local storage, so plain Registry.Get calls inside fn take the cached fast
// path without carrying a Cache around.
//
// The context propagates to child goroutines only when they are started
// with gls.Go instead of the go statement; goroutines started any other way
// fall back to the registry's synchronizing load, which is correct but
// slower.
func (r *Registry[I]) Managed(fn func()) {
	r.mgr.SetValues(gls.Values{r.cacheKey(): r.Cached()}, fn)
}

// managedCache returns the calling goroutine's cache, if it runs under
// Managed.
func (r *Registry[I]) managedCache() (*Cache[I], bool) {
	v, ok := r.mgr.GetValue(r.cacheKey())
	if !ok {
		return nil, false
	}
	c, ok := v.(*Cache[I])
	return c, ok
}

// cacheKey is the gls key under which this registry stores caches. The
// registry pointer itself is unique and comparable.
func (r *Registry[I]) cacheKey() any {
	return r
}
