// File: taskq/invoker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Invoker: one queued, runnable unit of work. Exactly one invoker exists
// per pushed task and it is invoked at most once. Retired invokers are
// recycled through a pool.SyncPool.

package taskq

import (
	"fmt"

	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/pool"
)

// TaskFunc is a unit of work. The returned value and error are stored in
// the task's future; a panic is captured as a failure, never propagated
// to the executing goroutine.
type TaskFunc func() (any, error)

// invoker wraps a callable and its shared state while the task travels
// through the run queue or the on-hold registry.
type invoker struct {
	fn    TaskFunc
	state *sharedState

	// highPriority is set only through the on-hold registry, by a
	// goroutine synchronously waiting on this task. The completion
	// cascade runs high-priority invokers inline instead of re-queueing.
	highPriority bool
}

var invokerPool = pool.NewSyncPool(func() *invoker { return new(invoker) })

func newInvoker(fn TaskFunc, st *sharedState) *invoker {
	inv := invokerPool.Get()
	inv.fn = fn
	inv.state = st
	inv.highPriority = false
	return inv
}

// releaseInvoker returns a spent invoker to the pool. The caller must be
// the sole holder: the invoker has left the deque, the registry and any
// worker by the time this runs.
func releaseInvoker(inv *invoker) {
	inv.fn = nil
	inv.state = nil
	inv.highPriority = false
	invokerPool.Put(inv)
}

// runTask executes the callable, converting a panic into a captured error.
func runTask(fn TaskFunc) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", api.ErrTaskPanic, r)
		}
	}()
	return fn()
}
