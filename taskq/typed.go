// File: taskq/typed.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Generic sugar over the untyped future surface.

package taskq

import "github.com/momentics/hioload-taskq/api"

// TypedFuture wraps a Future with a concrete result type.
type TypedFuture[T any] struct {
	f *Future
}

// Submit pushes fn gated on the listed futures and returns a typed handle.
func Submit[T any](q *Queue, fn func() (T, error), after ...*Future) *TypedFuture[T] {
	f := q.PushDependent(func() (any, error) {
		value, err := fn()
		return value, err
	}, after...)
	return &TypedFuture[T]{f: f}
}

// Wait blocks until the task resolves and returns the typed result.
func (tf *TypedFuture[T]) Wait() api.Result[T] {
	value, err := tf.f.Wait()
	res := api.Result[T]{Err: err}
	if value != nil {
		res.Value, _ = value.(T)
	}
	return res
}

// Get is shorthand for Wait().Unwrap().
func (tf *TypedFuture[T]) Get() (T, error) {
	return tf.Wait().Unwrap()
}

// Future exposes the untyped handle, e.g. for use as a prerequisite.
func (tf *TypedFuture[T]) Future() *Future {
	return tf.f
}
