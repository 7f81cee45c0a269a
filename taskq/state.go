// File: taskq/state.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared future state: the synchronization record shared between the
// submitter, the queue and every dependent of one task.

package taskq

import (
	"sync"

	"github.com/momentics/hioload-taskq/api"
)

// statusConstructing is the internal pre-submission stage. It is never
// observable through a Future: PushDependent replaces it with on-hold or
// enqueued before the handle is returned. The completion cascade leaves
// constructing futures alone and lets the submitter enqueue them itself.
const statusConstructing api.FutureStatus = 0

// sharedState tracks one task's lifecycle, dependency wiring and result.
// It outlives both the originating Future handle and the last dependent
// that references it.
//
// Every field is guarded by mu. Status transitions are forward-only:
// constructing -> on-hold -> enqueued -> running -> completed | failed.
type sharedState struct {
	mu   sync.Mutex
	cond *sync.Cond

	status api.FutureStatus

	// priorRemaining counts unmet prerequisites. A prerequisite increments
	// it at registration time (under the prerequisite's own lock, so the
	// count is always visible before the cascade can decrement it).
	priorRemaining int

	// dependents holds back-references to every state that listed this
	// one as a prerequisite. Never owned; cleared after signaling.
	dependents []*sharedState

	// invokerIndex is the stable logical position of this task's invoker
	// in the run queue, valid only while status is enqueued.
	invokerIndex int64

	value any
	err   error
}

func newSharedState() *sharedState {
	st := &sharedState{status: statusConstructing}
	st.cond = sync.NewCond(&st.mu)
	return st
}

// resolve stores the outcome, moves to the terminal state and wakes every
// blocked waiter.
func (st *sharedState) resolve(value any, err error) {
	st.mu.Lock()
	st.value = value
	st.err = err
	if err != nil {
		st.status = api.FutureFailed
	} else {
		st.status = api.FutureCompleted
	}
	st.cond.Broadcast()
	st.mu.Unlock()
}

// wait blocks until the state is terminal and returns the stored outcome.
func (st *sharedState) wait() (any, error) {
	st.mu.Lock()
	for !st.status.Terminal() {
		st.cond.Wait()
	}
	value, err := st.value, st.err
	st.mu.Unlock()
	return value, err
}
