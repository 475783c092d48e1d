package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or breaks
	// referential integrity. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrLessonNotFound   = fmt.Errorf("%w: lesson", ErrNotFound)
	ErrRoleNotFound     = fmt.Errorf("%w: role", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)

	// Entity-specific "duplicate" errors.
	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrRoleNameExists = fmt.Errorf("%w: role name", ErrDuplicate)

	// ErrCategoryInUse is returned when deleting a category that still owns lessons.
	ErrCategoryInUse = fmt.Errorf("%w: category has lessons", ErrInvalidEntity)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
