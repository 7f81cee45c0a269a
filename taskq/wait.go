// File: taskq/wait.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The synchronous wait path: block until a future resolves, stealing and
// executing the future's own invoker on the calling goroutine whenever it
// is still sitting in the run queue.

package taskq

import "github.com/momentics/hioload-taskq/api"

// Future is the caller-side handle to one pushed task.
type Future struct {
	q     *Queue
	state *sharedState
}

var _ api.Future = (*Future)(nil)

// Wait blocks until the task resolves and returns its stored value or
// captured failure. Wait participates in execution: an enqueued task is
// stolen and run on the calling goroutine, and an on-hold task is flagged
// so the completion cascade runs it inline the instant its last
// prerequisite completes. Wait never fails due to queue mechanics.
func (f *Future) Wait() (any, error) {
	return f.q.Wait(f)
}

// TryResult returns the outcome without blocking; the boolean reports
// whether the task already reached a terminal state.
func (f *Future) TryResult() (any, error, bool) {
	st := f.state
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.status.Terminal() {
		return nil, nil, false
	}
	return st.value, st.err, true
}

// Status returns the task's current lifecycle stage.
func (f *Future) Status() api.FutureStatus {
	st := f.state
	st.mu.Lock()
	s := st.status
	st.mu.Unlock()
	return s
}

// Wait blocks until f resolves; see Future.Wait.
func (q *Queue) Wait(f *Future) (any, error) {
	if f == nil || f.state == nil {
		return nil, api.ErrInvalidArgument
	}
	st := f.state
	if q.tryInvoke(st) {
		return st.wait() // terminal: returns immediately
	}
	// Not stealable. If the task is parked on unmet prerequisites, flag
	// its invoker so the cascade runs it on the signaling goroutine
	// instead of re-queueing: bounds this waiter's latency.
	if !q.onHold.markHighPriority(st) {
		// The future left the registry between the steal attempt and the
		// flag: a cascade promoted it (or shutdown dropped it). Retry the
		// steal once; if that misses too, someone else holds the invoker
		// and will resolve the state, so blocking is safe.
		q.tryInvoke(st)
	}
	return st.wait()
}

// tryInvoke attempts to lift st's invoker out of the run queue by its
// stored logical index and execute it on the calling goroutine. It
// reports false when the task is not currently enqueued or a worker
// claimed the invoker first; the caller then falls back to blocking.
//
// The state lock is intentionally held while the queue lock is taken.
// This cannot deadlock against the promotion path (which nests queue
// lock -> state lock) because promotion only locks states it just
// flipped from on-hold, and tryInvoke gives up before touching the queue
// lock unless the status is enqueued.
func (q *Queue) tryInvoke(st *sharedState) bool {
	st.mu.Lock()
	if st.status != api.FutureEnqueued {
		st.mu.Unlock()
		return false
	}
	q.mu.Lock()
	inv := q.deque.removeByIndex(st.invokerIndex)
	q.mu.Unlock()
	if inv == nil {
		// A worker popped it between the status check and the queue
		// lock; it is running it right now. Not an error.
		st.mu.Unlock()
		return false
	}
	q.invoke(inv)
	return true
}
