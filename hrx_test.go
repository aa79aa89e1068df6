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

package hrx_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jtolds/gls"

	"dirpx.dev/hrx"
	"dirpx.dev/hrx/apis"
	"dirpx.dev/hrx/queue"
	"dirpx.dev/hrx/registry"
)

// Registries are process-wide and never torn down between tests, so each
// test nominates its own interface type.

// ---------------------- End-to-end scenario ----------------------

type recordLogger interface {
	record()
}

type nullLogger struct{}

func (*nullLogger) record() {}

type countingLogger struct {
	n atomic.Int64
}

func (l *countingLogger) record() { l.n.Add(1) }

type anotherLogger struct{}

func (*anotherLogger) record() {}

type loggerHook struct {
	fired atomic.Int64
}

func (h *loggerHook) OnSetAfterFinalize(current, attempted recordLogger) {
	h.fired.Add(1)
}

var _ apis.Hook[recordLogger] = (*loggerHook)(nil)

func TestEndToEndLoggerScenario(t *testing.T) {
	hook := &loggerHook{}
	def := &nullLogger{}
	reg := hrx.Nominate[recordLogger](def, registry.WithHook[recordLogger](hook))

	if got := hrx.Get[recordLogger](); got != recordLogger(def) {
		t.Fatalf("fresh registry returned %T, want the nominated default", got)
	}

	counting := &countingLogger{}
	if _, ok := hrx.Set[recordLogger](counting); !ok {
		t.Fatal("Set rejected before finalize")
	}

	// 4 workers, 25 records each, dispatched through per-goroutine caches.
	// After a worker's first post-swap call, it must never observe the
	// default again.
	const workers = 4
	const perWorker = 25
	wg := sync.WaitGroup{}
	wg.Add(workers)
	reg.Managed(func() {
		for w := 0; w < workers; w++ {
			gls.Go(func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					got := hrx.Get[recordLogger]()
					if got != recordLogger(counting) {
						t.Errorf("worker observed %T after swap, want the counting logger", got)
						return
					}
					got.record()
				}
			})
		}
	})
	wg.Wait()

	if total := counting.n.Load(); total != workers*perWorker {
		t.Fatalf("counter totals %d, want %d", total, workers*perWorker)
	}

	hrx.Finalize[recordLogger]()

	if _, ok := hrx.Set[recordLogger](&anotherLogger{}); ok {
		t.Fatal("Set accepted after finalize")
	}
	if fired := hook.fired.Load(); fired != 1 {
		t.Fatalf("hook fired %d times, want 1", fired)
	}
	if got := hrx.Get[recordLogger](); got != recordLogger(counting) {
		t.Fatalf("Get returned %T after rejected swap, want the counting logger", got)
	}
}

// ---------------------- Nominate semantics ----------------------

type greeter interface {
	greet() string
}

type englishGreeter struct{}

func (*englishGreeter) greet() string { return "hello" }

type frenchGreeter struct{}

func (*frenchGreeter) greet() string { return "bonjour" }

func TestNominateIsCreateOrGet(t *testing.T) {
	first := hrx.Nominate[greeter](&englishGreeter{})
	second := hrx.Nominate[greeter](&frenchGreeter{})

	if first != second {
		t.Fatal("Nominate must return the one process-wide registry per interface type")
	}
	if got := hrx.Get[greeter]().greet(); got != "hello" {
		t.Fatalf("Get returned %q; the second Nominate must not rebind the default", got)
	}
}

func TestForPanicsWithoutNomination(t *testing.T) {
	type neverNominated interface{ unused() }

	defer func() {
		if recover() == nil {
			t.Fatal("Get for a never-nominated interface must panic")
		}
	}()
	_ = hrx.Get[neverNominated]()
}

// ---------------------- Queue policy wiring ----------------------

// TestOverflowPolicyDispatch exercises the expected use site: a chunk-queue
// data path reporting overflow through the registered policy.
func TestOverflowPolicyDispatch(t *testing.T) {
	def := &queue.Drop{}
	hrx.Nominate[queue.OverflowPolicy](def)

	for i := 0; i < 5; i++ {
		hrx.Get[queue.OverflowPolicy]().OnQueueError(queue.ErrOverflow)
	}
	if got := def.Dropped(); got != 5 {
		t.Fatalf("default policy saw %d errors, want 5", got)
	}

	custom := &queue.Drop{}
	if _, ok := hrx.Set[queue.OverflowPolicy](custom); !ok {
		t.Fatal("Set rejected")
	}
	hrx.Get[queue.OverflowPolicy]().OnQueueError(queue.ErrSemaphoreAlreadySet)
	if got := custom.Dropped(); got != 1 {
		t.Fatalf("custom policy saw %d errors, want 1", got)
	}

	if _, ok := hrx.Reset[queue.OverflowPolicy](); !ok {
		t.Fatal("Reset rejected")
	}
	if got := hrx.Get[queue.OverflowPolicy](); got != queue.OverflowPolicy(def) {
		t.Fatalf("Get returned %T after Reset, want the default policy", got)
	}
}
