// Package control
// Author: momentics <momentics@gmail.com>
//
// Hot-reload, runtime metrics, configuration control, and debug
// introspection layer for hioload-taskq.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload (e.g. resizing the worker pool
//     when the "taskq.workers" key changes)
//   - Metrics telemetry contracts
//   - State export, debug hooks, and probe registration
package control
