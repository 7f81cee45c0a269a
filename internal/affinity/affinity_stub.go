//go:build !linux
// +build !linux

// File: internal/affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No-op fallback for platforms without a portable pinning call.

package affinity

// platformPin is a no-op; the OS-thread lock from PinCurrentThread still
// applies.
func platformPin(cpuID int) error {
	return nil
}
