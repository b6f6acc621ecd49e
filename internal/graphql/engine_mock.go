package graphql

import (
	"context"
	"fmt"
	"sync"
)

// MockEngine implements Engine with a per-operation result registry and a
// call log, for use in tests.
type MockEngine struct {
	mu      sync.Mutex
	results map[string]*ExecutionResult
	fn      func(ctx context.Context, op Operation) *ExecutionResult
	calls   []Operation
}

// NewMockEngine creates a MockEngine. The results map is keyed by operation
// name; the empty key serves unnamed operations.
func NewMockEngine(results map[string]*ExecutionResult) *MockEngine {
	m := &MockEngine{results: make(map[string]*ExecutionResult)}
	for k, v := range results {
		m.results[k] = v
	}
	return m
}

// NewMockValueEngine returns a MockEngine that answers every operation with
// the given data and no errors.
func NewMockValueEngine(data any) *MockEngine {
	m := NewMockEngine(nil)
	m.fn = func(context.Context, Operation) *ExecutionResult {
		return &ExecutionResult{Data: data}
	}
	return m
}

// NewMockErrorEngine returns a MockEngine that answers every operation with
// nil data and a single error.
func NewMockErrorEngine(message string) *MockEngine {
	m := NewMockEngine(nil)
	m.fn = func(context.Context, Operation) *ExecutionResult {
		return &ExecutionResult{Errors: []Error{{Message: message}}}
	}
	return m
}

// SetFunc installs fn as the resolver for all operations, overriding the
// result registry.
func (m *MockEngine) SetFunc(fn func(ctx context.Context, op Operation) *ExecutionResult) {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
}

func (m *MockEngine) ExecuteSync(ctx context.Context, op Operation) *ExecutionResult {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	fn := m.fn
	res := m.results[op.OperationName]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, op)
	}
	if res != nil {
		return res
	}
	return &ExecutionResult{
		Errors: []Error{{Message: fmt.Sprintf("no mock result for operation %q", op.OperationName)}},
	}
}

// Calls returns a copy of the operations executed so far.
func (m *MockEngine) Calls() []Operation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Operation(nil), m.calls...)
}
