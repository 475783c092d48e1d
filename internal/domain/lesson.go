package domain

import (
	"strings"
	"time"
)

// Lesson is a unit of course content that belongs to exactly one Category.
type Lesson struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLesson creates a validated, not yet persisted Lesson.
func NewLesson(categoryID int64, title, content string) (*Lesson, error) {
	now := time.Now().UTC()
	lesson := &Lesson{
		CategoryID: categoryID,
		Title:      strings.TrimSpace(title),
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	return lesson, nil
}

// Update overwrites the mutable fields and bumps UpdatedAt.
func (l *Lesson) Update(categoryID int64, title, content string) error {
	updated := *l
	updated.CategoryID = categoryID
	updated.Title = strings.TrimSpace(title)
	updated.Content = content
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*l = updated
	return nil
}

// Validate checks that the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.CategoryID <= 0 {
		return NewValidationError("category_id", "is required", ErrInvalidID)
	}
	if l.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if len([]rune(l.Title)) > MaxNameLength {
		return NewValidationError("title", "is too long", nil)
	}
	return nil
}
