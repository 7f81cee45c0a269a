// File: tests/benchmarks/taskq_bench_test.go
package benchmarks

import (
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc"

	"github.com/momentics/hioload-taskq/taskq"
)

// BenchmarkPushWait measures the full push-then-wait round trip for
// trivial tasks on a small pool.
func BenchmarkPushWait(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(4))
	defer q.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := q.Push(func() (any, error) { return i, nil })
		if _, err := f.Wait(); err != nil {
			b.Fatalf("wait failed: %v", err)
		}
	}
}

// BenchmarkPushThroughput measures raw submission rate: futures are
// collected and awaited outside the timed region in batches.
func BenchmarkPushThroughput(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(8))
	defer q.Shutdown()

	var sink int64
	futures := make([]*taskq.Future, 0, b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		futures = append(futures, q.Push(func() (any, error) {
			atomic.AddInt64(&sink, 1)
			return nil, nil
		}))
	}
	b.StopTimer()
	for _, f := range futures {
		f.Wait()
	}
	if atomic.LoadInt64(&sink) != int64(b.N) {
		b.Fatalf("expected %d runs, got %d", b.N, sink)
	}
}

// BenchmarkDependentChain measures per-link latency of long dependency
// chains, the worst case for the completion cascade.
func BenchmarkDependentChain(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(2))
	defer q.Shutdown()

	b.ResetTimer()
	prev := q.Push(func() (any, error) { return 0, nil })
	for i := 0; i < b.N; i++ {
		prev = q.PushDependent(func() (any, error) { return nil, nil }, prev)
	}
	if _, err := prev.Wait(); err != nil {
		b.Fatalf("chain failed: %v", err)
	}
}

// BenchmarkParallelProducers measures contention on the push path with
// many concurrent submitters.
func BenchmarkParallelProducers(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(8))
	defer q.Shutdown()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			f := q.Push(func() (any, error) { return nil, nil })
			if _, err := f.Wait(); err != nil {
				b.Fatalf("wait failed: %v", err)
			}
		}
	})
}

// BenchmarkFanOutFanIn measures a repeated scatter/gather pattern.
func BenchmarkFanOutFanIn(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(4))
	defer q.Shutdown()

	const width = 16
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		deps := make([]*taskq.Future, width)
		for j := 0; j < width; j++ {
			deps[j] = q.Push(func() (any, error) { return nil, nil })
		}
		join := q.PushDependent(func() (any, error) { return nil, nil }, deps...)
		if _, err := join.Wait(); err != nil {
			b.Fatalf("join failed: %v", err)
		}
	}
}

// BenchmarkWaitSteal measures the zero-worker steal path: every task runs
// on the waiting goroutine.
func BenchmarkWaitSteal(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(0))
	defer q.Shutdown()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := q.Push(func() (any, error) { return nil, nil })
		if _, err := f.Wait(); err != nil {
			b.Fatalf("wait failed: %v", err)
		}
	}
}

// BenchmarkResizeChurn measures throughput while the pool is continuously
// resized by a background goroutine.
func BenchmarkResizeChurn(b *testing.B) {
	q := taskq.New(taskq.WithWorkers(4))
	defer q.Shutdown()

	stop := make(chan struct{})
	var wg conc.WaitGroup
	wg.Go(func() {
		sizes := []int{2, 8, 1, 4}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				q.SetWorkerCount(sizes[i%len(sizes)])
			}
		}
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f := q.Push(func() (any, error) { return nil, nil })
		if _, err := f.Wait(); err != nil {
			b.Fatalf("wait failed: %v", err)
		}
	}
	b.StopTimer()
	close(stop)
	wg.Wait()
}
