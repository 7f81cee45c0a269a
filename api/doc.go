// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the public contracts of the hioload-taskq library.
//
// hioload-taskq is an in-process threaded task queue with dependency-ordered
// futures: callers submit units of work, optionally gated on the completion
// of previously submitted work, and the queue executes them on a dynamically
// resizable pool of workers. Waiting callers participate in execution by
// stealing their own task out of the queue.
//
// Contracts are declared one concern per file:
//   - Executor: parallel task dispatch with runtime resizing
//   - Future: a handle to one submitted unit of work
//   - Result: generic payload/error pair
//   - Control: dynamic config, metrics and debug introspection
//   - GracefulShutdown: unified teardown contract
//
// Implementations live in the taskq, control and facade packages.
package api
