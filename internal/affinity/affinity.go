// File: internal/affinity/affinity.go
// Package affinity provides best-effort CPU pinning for worker goroutines.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

import "runtime"

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to a CPU derived from the worker's pool position. Pinning is
// best effort: on platforms without a pinning syscall only the lock is
// applied.
func PinCurrentThread(position int) error {
	runtime.LockOSThread()
	ncpu := runtime.NumCPU()
	if ncpu <= 0 {
		return nil
	}
	return platformPin(position % ncpu)
}
