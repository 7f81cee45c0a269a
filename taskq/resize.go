// File: taskq/resize.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime pool resizing. Resize requests are control operations: they
// execute strictly in submission order on a dedicated drainer goroutine,
// each one only after the previous completed.

package taskq

// SetWorkerCount asynchronously resizes the worker pool to n (n >= 0).
// The effect becomes visible only after all previously submitted control
// requests have completed. Resizing a queue that is being destroyed is a
// silent no-op: destruction wins.
func (q *Queue) SetWorkerCount(n int) {
	if n < 0 {
		n = 0
	}
	q.pushControl(func() { q.applyWorkerCount(n) })
}

// Resize implements api.Executor.
func (q *Queue) Resize(newCount int) {
	q.SetWorkerCount(newCount)
}

// pushControl appends a control request and ensures exactly one drainer
// goroutine is working the FIFO down. Requests never run on the caller's
// goroutine: a worker that resizes the pool from inside a task only
// enqueues here and retires on its next pop if the shrink outranks it.
func (q *Queue) pushControl(fn func()) {
	q.controlMu.Lock()
	q.controlQ.Add(fn)
	if q.controlBusy {
		q.controlMu.Unlock()
		return
	}
	q.controlBusy = true
	q.controlMu.Unlock()
	go q.drainControl()
}

func (q *Queue) drainControl() {
	for {
		q.controlMu.Lock()
		if q.controlQ.Length() == 0 {
			q.controlBusy = false
			q.controlMu.Unlock()
			return
		}
		fn := q.controlQ.Remove().(func())
		q.controlMu.Unlock()
		fn()
	}
}

// applyWorkerCount performs the actual resize on the control drainer
// goroutine. Because the drainer is never a worker, the goroutine doing
// a shrink is always a survivor and can safely join every retiring
// worker. (This replaces the classic trick of a worker swapping its own
// index with worker 0 before shrinking past itself: same outcome, the
// initiator is guaranteed to outlive the join.)
func (q *Queue) applyWorkerCount(n int) {
	q.destroyMu.Lock()
	defer q.destroyMu.Unlock()

	q.mu.Lock()
	if q.destroying {
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()

	current := q.workers.count()
	switch {
	case n == current:
		// Nothing to do.
	case n > current:
		q.mu.Lock()
		q.workerTarget = n
		q.mu.Unlock()
		for i := current; i < n; i++ {
			q.spawnWorker(i)
		}
	default:
		// Publish the shrunken target, wake everyone so out-of-range
		// workers notice, then join exactly the retiring workers before
		// truncating the handle slice.
		q.mu.Lock()
		q.workerTarget = n
		q.mu.Unlock()
		q.cond.Broadcast()
		for _, h := range q.workers.from(n) {
			<-h.done
		}
		q.workers.truncate(n)
	}
}
