package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/store"
)

// MockLessonStore is an in-memory store.LessonStore. When Categories is set,
// lessons must reference an existing category.
type MockLessonStore struct {
	Categories store.CategoryStore

	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Lesson
}

var _ store.LessonStore = (*MockLessonStore)(nil)

// NewMockLessonStore creates an empty store checking references against categories.
func NewMockLessonStore(categories store.CategoryStore) *MockLessonStore {
	return &MockLessonStore{Categories: categories, nextID: 1, rows: make(map[int64]domain.Lesson)}
}

func (m *MockLessonStore) checkCategory(ctx context.Context, id int64) error {
	if m.Categories == nil {
		return nil
	}
	if _, err := m.Categories.GetByID(ctx, id); err != nil {
		return fmt.Errorf("%w: category %d", store.ErrInvalidEntity, id)
	}
	return nil
}

// Create implements store.LessonStore
func (m *MockLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return err
	}
	if err := m.checkCategory(ctx, lesson.CategoryID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	lesson.ID = m.nextID
	m.nextID++
	m.rows[lesson.ID] = *lesson
	return nil
}

// GetByID implements store.LessonStore
func (m *MockLessonStore) GetByID(_ context.Context, id int64) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	return &row, nil
}

// Update implements store.LessonStore
func (m *MockLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	if err := lesson.Validate(); err != nil {
		return err
	}
	if err := m.checkCategory(ctx, lesson.CategoryID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[lesson.ID]; !ok {
		return store.ErrLessonNotFound
	}
	m.rows[lesson.ID] = *lesson
	return nil
}

// Delete implements store.LessonStore
func (m *MockLessonStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrLessonNotFound
	}
	delete(m.rows, id)
	return nil
}

// List implements store.LessonStore
func (m *MockLessonStore) List(_ context.Context, limit, offset int) ([]*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Lesson, 0, limit)
	for _, id := range window(sortedKeys(m.rows), limit, offset) {
		row := m.rows[id]
		out = append(out, &row)
	}
	return out, nil
}

// Count implements store.LessonStore
func (m *MockLessonStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

// WithTx implements store.LessonStore
func (m *MockLessonStore) WithTx(_ *sql.Tx) store.LessonStore {
	return m
}
