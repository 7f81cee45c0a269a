// File: taskq/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package taskq implements a threaded task queue with dependency-ordered
// futures.
//
// Callers push tasks, optionally gated on the completion of previously
// pushed tasks, and receive a Future per task. Tasks run on a pool of
// worker goroutines that can be resized at runtime, including down to
// zero. A task whose prerequisites are unmet is parked in an on-hold
// registry and promoted to the front of the run queue the instant its
// last prerequisite completes: recently unblocked work tends to sit on
// the critical path, so it jumps ahead of merely-arrived work.
//
// Waiting is cooperative. A goroutine that calls Wait on an enqueued
// future first tries to steal that exact invoker out of the queue and
// execute it itself, which keeps the caller from deadlocking when every
// worker is itself blocked on a future whose invoker is still queued.
//
// Ordering: tasks with no dependency relationship run FIFO by submission
// order, except that dependency promotion inserts newly ready work at the
// front. Strict global FIFO is therefore not guaranteed once dependencies
// exist.
//
// Lock discipline (binding for any change to this package):
//   - Queue.mu guards the invoker deque, the published worker target and
//     the destroying flag. Never acquire a shared state's lock for a
//     future other than the one just popped while holding Queue.mu.
//   - The on-hold registry has its own lock and may nest inside a shared
//     state lock, never the other way around for longer than extraction.
//   - tryInvoke holds the target state's lock while taking Queue.mu; this
//     is safe because the promotion path only locks states it just
//     flipped from on-hold, which tryInvoke refuses to touch.
//   - The completion cascade detaches a terminal state's dependents list
//     and releases that state's lock before walking it. User code invoked
//     inline by the cascade therefore never runs under an ancestor's lock
//     and may freely Wait on any terminal future.
package taskq
