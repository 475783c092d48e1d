package domain

import (
	"strings"
	"time"
)

// Category groups lessons in the catalogue.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory creates a validated, not yet persisted Category.
// The ID is assigned by the store on insert.
func NewCategory(name, description string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return category, nil
}

// Update overwrites the mutable fields and bumps UpdatedAt.
func (c *Category) Update(name, description string) error {
	updated := *c
	updated.Name = strings.TrimSpace(name)
	updated.Description = strings.TrimSpace(description)
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*c = updated
	return nil
}

// Validate checks that the Category has valid data.
func (c *Category) Validate() error {
	return validateNamed(c.Name, c.Description)
}

func validateNamed(name, description string) error {
	if name == "" {
		return NewValidationError("name", "is required", nil)
	}
	if len([]rune(name)) > MaxNameLength {
		return NewValidationError("name", "is too long", nil)
	}
	if len([]rune(description)) > MaxDescriptionLength {
		return NewValidationError("description", "is too long", nil)
	}
	return nil
}
