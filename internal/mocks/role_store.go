package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/store"
)

// MockRoleStore is an in-memory store.RoleStore enforcing unique names.
type MockRoleStore struct {
	CreateFn func(ctx context.Context, role *domain.Role) error
	DeleteFn func(ctx context.Context, id int64) error

	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Role
}

var _ store.RoleStore = (*MockRoleStore)(nil)

// NewMockRoleStore creates an empty store whose first ID is 1.
func NewMockRoleStore() *MockRoleStore {
	return &MockRoleStore{nextID: 1, rows: make(map[int64]domain.Role)}
}

func (m *MockRoleStore) nameTaken(name string, except int64) bool {
	for id, row := range m.rows {
		if id != except && strings.EqualFold(row.Name, name) {
			return true
		}
	}
	return false
}

// Create implements store.RoleStore
func (m *MockRoleStore) Create(ctx context.Context, role *domain.Role) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, role)
	}
	if err := role.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(role.Name, 0) {
		return store.ErrRoleNameExists
	}
	role.ID = m.nextID
	m.nextID++
	m.rows[role.ID] = *role
	return nil
}

// GetByID implements store.RoleStore
func (m *MockRoleStore) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, store.ErrRoleNotFound
	}
	return &row, nil
}

// Update implements store.RoleStore
func (m *MockRoleStore) Update(_ context.Context, role *domain.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[role.ID]; !ok {
		return store.ErrRoleNotFound
	}
	if m.nameTaken(role.Name, role.ID) {
		return store.ErrRoleNameExists
	}
	m.rows[role.ID] = *role
	return nil
}

// Delete implements store.RoleStore
func (m *MockRoleStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrRoleNotFound
	}
	delete(m.rows, id)
	return nil
}

// List implements store.RoleStore
func (m *MockRoleStore) List(_ context.Context, limit, offset int) ([]*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Role, 0, limit)
	for _, id := range window(sortedKeys(m.rows), limit, offset) {
		row := m.rows[id]
		out = append(out, &row)
	}
	return out, nil
}

// Count implements store.RoleStore
func (m *MockRoleStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}
