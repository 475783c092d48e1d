package mocks

import (
	"context"
	"sync"

	"github.com/lessonboard/lessonboard/internal/store"
)

// MockTransactor runs each unit of work directly with a nil transaction. The
// in-memory stores ignore the transaction, so fn sees every write at once.
type MockTransactor struct {
	// Err, when set, is returned instead of running fn.
	Err error

	mu    sync.Mutex
	calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// NewMockTransactor creates a MockTransactor.
func NewMockTransactor() *MockTransactor {
	return &MockTransactor{}
}

// RunInTransaction implements store.Transactor
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.calls++
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return err
	}
	return fn(ctx, nil)
}

// Calls reports how many units of work were started.
func (m *MockTransactor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
