// File: taskq/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker handles, the worker identity registry and the pop loop run by
// each worker goroutine.

package taskq

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-taskq/internal/affinity"
)

// workerHandle pairs one worker goroutine with its shared index cell. The
// cell is the worker's logical identity: a worker re-checks it against the
// published target on every wake and retires itself the moment it falls
// out of range. done is closed on exit so a resizer can join exactly the
// retiring workers.
type workerHandle struct {
	id    uint64
	index int32 // read/written atomically
	done  chan struct{}
}

func (h *workerHandle) indexValue() int { return int(atomic.LoadInt32(&h.index)) }

// workerRegistry owns the position-ordered handle slice plus an identity
// map, behind its own lock. The queue's main mutex is never needed here.
type workerRegistry struct {
	mu      sync.Mutex
	nextID  uint64
	ordered []*workerHandle
	byID    map[uint64]*workerHandle
}

func (r *workerRegistry) init() {
	r.byID = make(map[uint64]*workerHandle)
}

func (r *workerRegistry) add(h *workerHandle) {
	r.mu.Lock()
	r.nextID++
	h.id = r.nextID
	r.ordered = append(r.ordered, h)
	r.byID[h.id] = h
	r.mu.Unlock()
}

// forget removes a retired worker's identity. Its slot in the ordered
// slice is truncated by the resizer after the join.
func (r *workerRegistry) forget(id uint64) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *workerRegistry) count() int {
	r.mu.Lock()
	n := len(r.ordered)
	r.mu.Unlock()
	return n
}

// from returns the handles at position n and beyond.
func (r *workerRegistry) from(n int) []*workerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.ordered) {
		return nil
	}
	out := make([]*workerHandle, len(r.ordered)-n)
	copy(out, r.ordered[n:])
	return out
}

func (r *workerRegistry) truncate(n int) {
	r.mu.Lock()
	if n < len(r.ordered) {
		r.ordered = r.ordered[:n]
	}
	r.mu.Unlock()
}

// spawnWorker starts one worker at the given pool position.
func (q *Queue) spawnWorker(position int) {
	h := &workerHandle{
		index: int32(position),
		done:  make(chan struct{}),
	}
	q.workers.add(h)
	go q.workerLoop(h)
}

func (q *Queue) workerLoop(h *workerHandle) {
	if q.opts.pinWorkers {
		// Best effort; an unpinnable platform still executes correctly.
		_ = affinity.PinCurrentThread(h.indexValue())
	}
	for q.pop(h) {
	}
	q.workers.forget(h.id)
	close(h.done)
}

// pop blocks for work and runs one invoker. It returns false when the
// worker must retire: its index fell out of range or the queue is being
// destroyed.
func (q *Queue) pop(h *workerHandle) bool {
	q.mu.Lock()
	for q.workerOnHold(h) {
		q.cond.Wait()
	}
	if !q.workerContinue(h) {
		q.mu.Unlock()
		return false
	}
	inv := q.deque.popFront()
	q.mu.Unlock()

	// The queue lock is released before the state lock is taken: holding
	// both across the call into user code is how deadlocks start.
	inv.state.mu.Lock()
	q.invoke(inv)
	return true
}

// workerOnHold: the worker is in service, the queue is live, and there is
// nothing to run. Caller holds q.mu.
func (q *Queue) workerOnHold(h *workerHandle) bool {
	return h.indexValue() < q.workerTarget && !q.destroying && q.deque.empty()
}

// workerContinue: the worker is in service, the queue is live, and work
// is available. Destruction stops workers even with work still queued;
// dropping undrained invokers is the documented shutdown policy. Caller
// holds q.mu.
func (q *Queue) workerContinue(h *workerHandle) bool {
	return h.indexValue() < q.workerTarget && !q.destroying && !q.deque.empty()
}
