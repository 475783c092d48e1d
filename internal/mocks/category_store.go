package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/store"
)

// MockCategoryStore is an in-memory store.CategoryStore.
type MockCategoryStore struct {
	CreateFn  func(ctx context.Context, category *domain.Category) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Category, error)
	UpdateFn  func(ctx context.Context, category *domain.Category) error
	DeleteFn  func(ctx context.Context, id int64) error
	ListFn    func(ctx context.Context, limit, offset int) ([]*domain.Category, error)
	ListAllFn func(ctx context.Context) ([]*domain.Category, error)
	CountFn   func(ctx context.Context) (int, error)

	// InUse marks category IDs that still own lessons; deleting them fails.
	InUse map[int64]bool

	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Category
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// NewMockCategoryStore creates an empty store whose first ID is 1.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		InUse:  make(map[int64]bool),
		nextID: 1,
		rows:   make(map[int64]domain.Category),
	}
}

// Seed inserts categories named names and returns them in order.
func (m *MockCategoryStore) Seed(names ...string) []*domain.Category {
	seeded := make([]*domain.Category, 0, len(names))
	for _, name := range names {
		category, err := domain.NewCategory(name, "")
		if err != nil {
			// ALLOW-PANIC: seed data is fixed by the test
			panic(err)
		}
		_ = m.Create(context.Background(), category)
		seeded = append(seeded, category)
	}
	return seeded
}

// Create implements store.CategoryStore
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}
	if err := category.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = m.nextID
	m.nextID++
	m.rows[category.ID] = *category
	return nil
}

// GetByID implements store.CategoryStore
func (m *MockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &row, nil
}

// Update implements store.CategoryStore
func (m *MockCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, category)
	}
	if err := category.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	m.rows[category.ID] = *category
	return nil
}

// Delete implements store.CategoryStore
func (m *MockCategoryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrCategoryNotFound
	}
	if m.InUse[id] {
		return store.ErrCategoryInUse
	}
	delete(m.rows, id)
	return nil
}

// List implements store.CategoryStore
func (m *MockCategoryStore) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ids := sortedKeys(m.rows)
	out := make([]*domain.Category, 0, limit)
	for _, id := range window(ids, limit, offset) {
		row := m.rows[id]
		out = append(out, &row)
	}
	return out, nil
}

// ListAll implements store.CategoryStore
func (m *MockCategoryStore) ListAll(ctx context.Context) ([]*domain.Category, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.rows))
	for _, id := range sortedKeys(m.rows) {
		row := m.rows[id]
		out = append(out, &row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Count implements store.CategoryStore
func (m *MockCategoryStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

// WithTx implements store.CategoryStore. The mock has no transactions.
func (m *MockCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore {
	return m
}

func sortedKeys[V any](rows map[int64]V) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func window(ids []int64, limit, offset int) []int64 {
	if offset >= len(ids) {
		return nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}
