// File: api/future.go
// Package api defines the Future contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Future is the caller-side handle to one submitted unit of work. Its
// status only moves forward: on-hold, enqueued, running, then one of the
// terminal states completed or failed.

package api

// FutureStatus describes the lifecycle stage of a submitted task.
type FutureStatus int32

const (
	// FutureOnHold means the task has unmet prerequisites and is parked
	// in the on-hold registry.
	FutureOnHold FutureStatus = iota + 1
	// FutureEnqueued means the task is sitting in the run queue.
	FutureEnqueued
	// FutureRunning means a worker (or a stealing waiter) is executing it.
	FutureRunning
	// FutureCompleted means the task finished and its result is available.
	FutureCompleted
	// FutureFailed means the task returned an error or panicked.
	FutureFailed
)

// Terminal reports whether the status is one of the terminal states.
func (s FutureStatus) Terminal() bool {
	return s == FutureCompleted || s == FutureFailed
}

// String returns a human-readable status name.
func (s FutureStatus) String() string {
	switch s {
	case FutureOnHold:
		return "on-hold"
	case FutureEnqueued:
		return "enqueued"
	case FutureRunning:
		return "running"
	case FutureCompleted:
		return "completed"
	case FutureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Future is the handle to one submitted task.
type Future interface {
	// Wait blocks until the task resolves, stealing and executing the task
	// on the calling goroutine when possible. It returns the stored value
	// or the captured failure; it never fails due to queue mechanics.
	Wait() (any, error)

	// TryResult returns the result without blocking. The boolean reports
	// whether the task has reached a terminal state.
	TryResult() (any, error, bool)

	// Status returns the current lifecycle stage.
	Status() FutureStatus
}
