// Package api
// Author: momentics@gmail.com
//
// Generic result and error propagation.

package api

// Result wraps any payload or error.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries no error.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Unwrap returns the payload and error as separate values.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}
