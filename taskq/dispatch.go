// File: taskq/dispatch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The invoke-and-signal cycle: run one invoker, resolve its future, then
// cascade completion into its dependents.

package taskq

import (
	"sync/atomic"

	"github.com/momentics/hioload-taskq/api"
)

// invoke runs one invoker. The caller holds inv.state.mu; invoke releases
// it before user code executes, so no two locks are ever held across the
// callable.
func (q *Queue) invoke(inv *invoker) {
	st := inv.state
	st.status = api.FutureRunning
	st.mu.Unlock()

	value, err := runTask(inv.fn)
	releaseInvoker(inv)
	st.resolve(value, err)
	atomic.AddUint64(&q.completed, 1)
	q.signalDependents(st)
}

// signalDependents walks the resolved future's dependents and decrements
// their prerequisite counters. A dependent whose counter hits zero while
// on hold is extracted from the registry and either run inline (high
// priority: a goroutine is synchronously waiting on it) or collected for
// promotion. The batch is pushed to the front of the run queue only after
// the walk, so the dependents list is never mutated re-entrantly while
// being iterated.
//
// A failed prerequisite still counts as completed here: failure does not
// propagate to dependents, they run normally once their counter reaches
// zero.
func (q *Queue) signalDependents(st *sharedState) {
	// st is terminal, so registration stopped: PushDependent never appends
	// to a terminal state's dependents. Snapshot and detach the list, then
	// walk it without st's lock. An inline dependent is thereby free to
	// Wait on st (re-reading its value) without self-deadlocking.
	st.mu.Lock()
	dependents := st.dependents
	st.dependents = nil
	st.mu.Unlock()

	var promote []*invoker

	for _, dep := range dependents {
		dep.mu.Lock()
		dep.priorRemaining--
		if dep.priorRemaining == 0 && dep.status == api.FutureOnHold {
			dep.mu.Unlock()
			inv := q.onHold.extract(dep)
			if inv == nil {
				// The shutdown drain claimed it first; drop will resolve it.
				continue
			}
			if inv.highPriority {
				dep.mu.Lock()
				q.invoke(inv)
			} else {
				promote = append(promote, inv)
			}
		} else {
			// Still constructing, still waiting on other prerequisites,
			// or already claimed; the submitter or a later cascade owns it.
			dep.mu.Unlock()
		}
	}

	if len(promote) == 0 {
		return
	}

	q.mu.Lock()
	if q.destroying {
		q.mu.Unlock()
		for _, inv := range promote {
			q.drop(inv)
		}
		return
	}
	// Front-push in reverse so promote[0] ends up at the front with the
	// smallest index: relative order within the batch is preserved.
	for i := len(promote) - 1; i >= 0; i-- {
		inv := promote[i]
		index := q.deque.pushFront(inv)
		ds := inv.state
		ds.mu.Lock()
		ds.invokerIndex = index
		ds.status = api.FutureEnqueued
		ds.mu.Unlock()
	}
	q.mu.Unlock()
	for range promote {
		q.cond.Signal()
	}
}

// drop resolves an undrained invoker's future with ErrQueueShutdown and
// cascades, so dependents parked behind it cannot hang. Shutdown-path only.
func (q *Queue) drop(inv *invoker) {
	st := inv.state
	atomic.AddUint64(&q.dropped, 1)
	releaseInvoker(inv)
	st.resolve(nil, api.ErrQueueShutdown)
	q.signalDependents(st)
}
