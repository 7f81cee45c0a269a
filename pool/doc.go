// Package pool
// Author: momentics <momentics@gmail.com>
//
// Transient object pooling for hioload-taskq. The task queue allocates
// one invoker per pushed task; recycling them through a generic pool
// keeps steady-state submission allocation-free.
// See objpool.go for implementation details.
package pool
