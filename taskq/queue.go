// File: taskq/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Queue: the pool object owning the invoker deque, the on-hold registry,
// the worker registry and the serialized control queue.

package taskq

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-taskq/api"
)

// Compile-time contract checks.
var (
	_ api.Executor         = (*Queue)(nil)
	_ api.GracefulShutdown = (*Queue)(nil)
)

// Queue is a threaded task queue with dependency-ordered futures.
// The zero value is not usable; construct with New.
type Queue struct {
	// mu guards the deque, workerTarget and destroying. Workers block on
	// cond while in service with nothing to run.
	mu           sync.Mutex
	cond         *sync.Cond
	deque        invokerDeque
	workerTarget int
	destroying   bool

	// destroyMu serializes resizing against destruction: a resize that
	// begins while the queue is being destroyed becomes a no-op.
	destroyMu sync.Mutex

	onHold  *onHoldRegistry
	workers workerRegistry

	// Control requests (resizes) execute strictly in submission order,
	// each after the previous one completed. Pending requests sit in an
	// eapache FIFO drained by at most one goroutine.
	controlMu   sync.Mutex
	controlQ    *queue.Queue
	controlBusy bool

	opts options

	submitted uint64
	completed uint64
	dropped   uint64
}

type options struct {
	workers    int
	pinWorkers bool
}

// Option configures a Queue at construction time.
type Option func(*options)

// WithWorkers sets the initial worker count. Default is one worker.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithPinnedWorkers binds each worker goroutine to an OS thread and, where
// the platform supports it, to a CPU matching its pool position.
func WithPinnedWorkers() Option {
	return func(o *options) { o.pinWorkers = true }
}

// New constructs a Queue and asynchronously spins up its initial workers.
func New(opts ...Option) *Queue {
	o := options{workers: 1}
	for _, fn := range opts {
		fn(&o)
	}
	if o.workers < 0 {
		o.workers = 0
	}
	q := &Queue{
		onHold:   newOnHoldRegistry(),
		controlQ: queue.New(),
		opts:     o,
	}
	q.cond = sync.NewCond(&q.mu)
	q.workers.init()
	q.SetWorkerCount(o.workers)
	return q
}

// Push enqueues a task with no prerequisites and returns its future.
// Submission never fails; pushing into a shut-down queue yields a future
// already failed with ErrQueueShutdown.
func (q *Queue) Push(fn TaskFunc) *Future {
	return q.PushDependent(fn)
}

// PushDependent enqueues a task gated on the listed futures. With no
// prerequisites (or only terminal ones) it behaves exactly like Push.
func (q *Queue) PushDependent(fn TaskFunc, after ...*Future) *Future {
	st := newSharedState()
	inv := newInvoker(fn, st)
	atomic.AddUint64(&q.submitted, 1)

	// Register on every live prerequisite. Registration and that
	// prerequisite's completion cascade are serialized by its own lock,
	// so by the time this state appears in a dependents list its counter
	// already accounts for the edge.
	for _, dep := range after {
		if dep == nil {
			continue
		}
		ds := dep.state
		ds.mu.Lock()
		if !ds.status.Terminal() {
			ds.dependents = append(ds.dependents, st)
			st.mu.Lock()
			st.priorRemaining++
			st.mu.Unlock()
		}
		ds.mu.Unlock()
	}

	// Park the invoker before publishing the on-hold status: the cascade
	// extracts from the registry the instant it sees on-hold with a zero
	// counter.
	q.onHold.insert(st, inv)

	st.mu.Lock()
	if st.priorRemaining > 0 {
		st.status = api.FutureOnHold
		st.mu.Unlock()
		return &Future{q: q, state: st}
	}
	st.mu.Unlock()

	// Every prerequisite resolved while the future was still constructing
	// (or there were none). The cascade never promotes a constructing
	// future, so the parked invoker is still ours to enqueue.
	q.enqueue(q.onHold.extract(st))
	return &Future{q: q, state: st}
}

// enqueue appends the invoker to the run queue and wakes one worker. The
// status flips to enqueued under both the queue lock and the state's own
// lock, mirroring the promotion path.
func (q *Queue) enqueue(inv *invoker) {
	st := inv.state
	q.mu.Lock()
	if q.destroying {
		q.mu.Unlock()
		q.drop(inv)
		return
	}
	index := q.deque.pushBack(inv)
	st.mu.Lock()
	st.invokerIndex = index
	st.status = api.FutureEnqueued
	st.mu.Unlock()
	q.mu.Unlock()
	q.cond.Signal()
}

// Submit implements api.Executor: fire-and-forget execution.
func (q *Queue) Submit(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	q.mu.Lock()
	destroyed := q.destroying
	q.mu.Unlock()
	if destroyed {
		return api.ErrQueueShutdown
	}
	q.Push(func() (any, error) {
		task()
		return nil, nil
	})
	return nil
}

// NumWorkers implements api.Executor.
func (q *Queue) NumWorkers() int {
	return q.workers.count()
}

// Shutdown implements api.GracefulShutdown: wake every worker, join them
// all, then drop whatever is still queued or on hold. Destruction does
// not drain — that is the documented partial-failure policy — but every
// abandoned future resolves with ErrQueueShutdown so waiters cannot hang.
// Idempotent.
func (q *Queue) Shutdown() error {
	q.destroyMu.Lock()
	q.mu.Lock()
	if q.destroying {
		q.mu.Unlock()
		q.destroyMu.Unlock()
		return nil
	}
	q.destroying = true
	q.mu.Unlock()
	q.destroyMu.Unlock()

	q.cond.Broadcast()
	for _, h := range q.workers.from(0) {
		<-h.done
	}
	q.workers.truncate(0)

	for {
		q.mu.Lock()
		inv := q.deque.popFront()
		q.mu.Unlock()
		if inv == nil {
			break
		}
		q.drop(inv)
	}
	// Dropping queued work cascades into its on-hold dependents; whatever
	// is left in the registry lost a race with a concurrent submission.
	for _, inv := range q.onHold.drain() {
		q.drop(inv)
	}
	return nil
}

// Stats returns basic queue metrics.
func (q *Queue) Stats() map[string]any {
	q.mu.Lock()
	depth := q.deque.len()
	target := q.workerTarget
	destroying := q.destroying
	q.mu.Unlock()
	return map[string]any{
		"workers":         q.workers.count(),
		"worker_target":   target,
		"queue_depth":     depth,
		"on_hold":         q.onHold.len(),
		"submitted_tasks": atomic.LoadUint64(&q.submitted),
		"completed_tasks": atomic.LoadUint64(&q.completed),
		"dropped_tasks":   atomic.LoadUint64(&q.dropped),
		"destroying":      destroying,
	}
}
