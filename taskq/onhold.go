// File: taskq/onhold.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// On-hold registry: maps a not-yet-runnable future's shared state to its
// invoker. Guarded by its own lock, distinct from the queue's main mutex,
// so the completion cascade can extract entries without any lock-ordering
// conflict against push and pop.

package taskq

import "sync"

type onHoldRegistry struct {
	mu      sync.Mutex
	entries map[*sharedState]*invoker
}

func newOnHoldRegistry() *onHoldRegistry {
	return &onHoldRegistry{entries: make(map[*sharedState]*invoker)}
}

func (r *onHoldRegistry) insert(st *sharedState, inv *invoker) {
	r.mu.Lock()
	r.entries[st] = inv
	r.mu.Unlock()
}

// extract removes and returns the invoker registered for st, or nil.
func (r *onHoldRegistry) extract(st *sharedState) *invoker {
	r.mu.Lock()
	inv := r.entries[st]
	delete(r.entries, st)
	r.mu.Unlock()
	return inv
}

// markHighPriority flags the registered invoker so the completion cascade
// runs it inline on the signaling goroutine instead of re-queueing it. It
// reports false when st already left the registry, meaning the future was
// promoted (or dropped) before the flag landed.
func (r *onHoldRegistry) markHighPriority(st *sharedState) bool {
	r.mu.Lock()
	inv, ok := r.entries[st]
	if ok {
		inv.highPriority = true
	}
	r.mu.Unlock()
	return ok
}

// drain empties the registry, returning every parked invoker. Used only
// during shutdown.
func (r *onHoldRegistry) drain() []*invoker {
	r.mu.Lock()
	invokers := make([]*invoker, 0, len(r.entries))
	for st, inv := range r.entries {
		invokers = append(invokers, inv)
		delete(r.entries, st)
	}
	r.mu.Unlock()
	return invokers
}

func (r *onHoldRegistry) len() int {
	r.mu.Lock()
	n := len(r.entries)
	r.mu.Unlock()
	return n
}
