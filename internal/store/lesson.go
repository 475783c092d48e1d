package store

import (
	"context"
	"database/sql"

	"github.com/lessonboard/lessonboard/internal/domain"
)

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	// Create inserts a new lesson and assigns its ID.
	// Returns ErrInvalidEntity if the referenced category does not exist.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)

	// Update overwrites the stored fields of an existing lesson.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// Delete removes a lesson.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns at most limit lessons ordered by ID, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*domain.Lesson, error)

	// Count returns the total number of lessons.
	Count(ctx context.Context) (int, error)

	// WithTx returns a LessonStore bound to the given transaction.
	WithTx(tx *sql.Tx) LessonStore
}
