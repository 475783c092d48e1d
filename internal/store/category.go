package store

import (
	"context"
	"database/sql"

	"github.com/lessonboard/lessonboard/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create inserts a new category and assigns its ID.
	// Returns validation errors from the domain Category if data is invalid.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// Update overwrites the stored fields of an existing category.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category.
	// Returns ErrCategoryNotFound if the category does not exist and
	// ErrCategoryInUse if lessons still reference it.
	Delete(ctx context.Context, id int64) error

	// List returns at most limit categories ordered by ID, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*domain.Category, error)

	// ListAll returns every category ordered by name.
	ListAll(ctx context.Context) ([]*domain.Category, error)

	// Count returns the total number of categories.
	Count(ctx context.Context) (int, error)

	// WithTx returns a CategoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
