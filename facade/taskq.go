// File: facade/taskq.go
// Unified facade layer for hioload-taskq library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the TaskQueue struct, which aggregates the task queue
// and its control plane behind a single facade. It wires the config store
// to the pool so that the "taskq.workers" key resizes the pool on
// hot-reload, publishes queue statistics as metrics and debug probes, and
// exposes methods to submit work, wait on futures, and shut down.

package facade

import (
	"log"
	"runtime"
	"sync"

	"github.com/momentics/hioload-taskq/adapters"
	"github.com/momentics/hioload-taskq/api"
	"github.com/momentics/hioload-taskq/control"
	"github.com/momentics/hioload-taskq/taskq"
)

// Config holds parameters applied at construction. Worker count can be
// changed later through the Control interface, which triggers hot-reload.
type Config struct {
	Workers       int  // Initial number of pool workers
	PinWorkers    bool // Whether to pin workers to CPUs
	EnableMetrics bool // Whether to publish queue stats as metrics
	EnableDebug   bool // Whether to register debug probes
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.NumCPU(),
		PinWorkers:    false,
		EnableMetrics: true,
		EnableDebug:   true,
	}
}

// TaskQueue is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type TaskQueue struct {
	queue   *taskq.Queue
	control *adapters.ControlAdapter

	config *Config
	mu     sync.Mutex
	closed bool
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*TaskQueue)(nil)

// New constructs a TaskQueue with the given configuration: the queue
// itself, the control adapter, the hot-reload hook that applies worker
// count changes, and metrics/debug publication.
func New(cfg *Config) (*TaskQueue, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Workers < 0 {
		return nil, api.ErrInvalidArgument
	}

	opts := []taskq.Option{taskq.WithWorkers(cfg.Workers)}
	if cfg.PinWorkers {
		opts = append(opts, taskq.WithPinnedWorkers())
	}

	tq := &TaskQueue{
		queue:   taskq.New(opts...),
		control: adapters.NewControlAdapter(),
		config:  cfg,
	}

	// Expose configuration via Control for observability and hot-reload.
	tq.control.SetConfig(map[string]any{
		control.KeyWorkers:    cfg.Workers,
		control.KeyPinWorkers: cfg.PinWorkers,
	})

	// Re-read the worker count on every config change. A no-op resize is
	// absorbed by the control queue, so reloads of unrelated keys are cheap.
	store := tq.control.ConfigStore()
	tq.control.OnReload(func() {
		workers := store.IntValue(control.KeyWorkers, cfg.Workers)
		if workers < 0 {
			log.Printf("[facade] ignoring invalid %s=%d", control.KeyWorkers, workers)
			return
		}
		tq.queue.SetWorkerCount(workers)
	})

	if cfg.EnableDebug {
		tq.control.RegisterDebugProbe("taskq", func() any {
			return tq.queue.Stats()
		})
	}
	return tq, nil
}

// Queue returns the underlying task queue for direct future-based use.
func (tq *TaskQueue) Queue() *taskq.Queue {
	return tq.queue
}

// GetControl returns the Control interface for dynamic config and metrics.
func (tq *TaskQueue) GetControl() api.Control {
	return tq.control
}

// Submit schedules a fire-and-forget task on the pool.
func (tq *TaskQueue) Submit(task func()) error {
	return tq.queue.Submit(task)
}

// Push enqueues a task and returns its future.
func (tq *TaskQueue) Push(fn taskq.TaskFunc) *taskq.Future {
	return tq.queue.Push(fn)
}

// PushDependent enqueues a task gated on the listed futures.
func (tq *TaskQueue) PushDependent(fn taskq.TaskFunc, after ...*taskq.Future) *taskq.Future {
	return tq.queue.PushDependent(fn, after...)
}

// PublishMetrics copies the current queue stats into the metrics registry.
func (tq *TaskQueue) PublishMetrics() {
	if tq.config.EnableMetrics {
		tq.control.MergeMetrics("taskq.", tq.queue.Stats())
	}
}

// Shutdown implements api.GracefulShutdown. Idempotent.
func (tq *TaskQueue) Shutdown() error {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if tq.closed {
		return nil
	}
	tq.closed = true
	if err := tq.queue.Shutdown(); err != nil {
		log.Printf("[facade] queue shutdown: %v", err)
		return err
	}
	return nil
}
