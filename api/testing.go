// Package api
// Author: momentics
//
// Mock/testing utilities for all core contracts; extendable for new interfaces.

package api

// MockExecutor is a test and mock-friendly implementation of Executor.
type MockExecutor struct {
	SubmitFunc     func(func()) error
	NumWorkersFunc func() int
	ResizeFunc     func(int)
}

func (m *MockExecutor) Submit(task func()) error { return m.SubmitFunc(task) }
func (m *MockExecutor) NumWorkers() int          { return m.NumWorkersFunc() }
func (m *MockExecutor) Resize(newCount int)      { m.ResizeFunc(newCount) }

// MockFuture is a test and mock-friendly implementation of Future.
type MockFuture struct {
	WaitFunc      func() (any, error)
	TryResultFunc func() (any, error, bool)
	StatusFunc    func() FutureStatus
}

func (m *MockFuture) Wait() (any, error)            { return m.WaitFunc() }
func (m *MockFuture) TryResult() (any, error, bool) { return m.TryResultFunc() }
func (m *MockFuture) Status() FutureStatus          { return m.StatusFunc() }

// Extend with mocks for all additional core contracts as architecture evolves.
