package domain

import (
	"strings"
	"time"
)

// Role is a named permission group assigned to users.
// Role names are unique.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRole creates a validated, not yet persisted Role.
func NewRole(name, description string) (*Role, error) {
	now := time.Now().UTC()
	role := &Role{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	return role, nil
}

// Update overwrites the mutable fields and bumps UpdatedAt.
func (r *Role) Update(name, description string) error {
	updated := *r
	updated.Name = strings.TrimSpace(name)
	updated.Description = strings.TrimSpace(description)
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*r = updated
	return nil
}

// Validate checks that the Role has valid data.
func (r *Role) Validate() error {
	return validateNamed(r.Name, r.Description)
}
