package store

import (
	"context"

	"github.com/lessonboard/lessonboard/internal/domain"
)

// RoleStore defines the interface for role data persistence.
type RoleStore interface {
	// Create inserts a new role and assigns its ID.
	// Returns ErrRoleNameExists if the name is taken.
	Create(ctx context.Context, role *domain.Role) error

	// GetByID retrieves a role by its ID.
	// Returns ErrRoleNotFound if the role does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Role, error)

	// Update overwrites the stored fields of an existing role.
	// Returns ErrRoleNotFound if the role does not exist and
	// ErrRoleNameExists if the new name is taken.
	Update(ctx context.Context, role *domain.Role) error

	// Delete removes a role.
	// Returns ErrRoleNotFound if the role does not exist.
	Delete(ctx context.Context, id int64) error

	// List returns at most limit roles ordered by ID, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*domain.Role, error)

	// Count returns the total number of roles.
	Count(ctx context.Context) (int, error)
}
