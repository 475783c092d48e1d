package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := NewCategory("  Math ", "Numbers and shapes")
		require.NoError(t, err)
		assert.Equal(t, "Math", c.Name)
		assert.Equal(t, "Numbers and shapes", c.Description)
		assert.Zero(t, c.ID, "ID is assigned by the store")
		assert.False(t, c.CreatedAt.IsZero())
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCategory("   ", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("a", MaxNameLength+1), "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("description too long", func(t *testing.T) {
		_, err := NewCategory("Math", strings.Repeat("d", MaxDescriptionLength+1))
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "description", vErr.Field)
	})
}

func TestCategoryUpdate(t *testing.T) {
	c, err := NewCategory("Math", "")
	require.NoError(t, err)
	c.ID = 7
	created := c.CreatedAt

	require.NoError(t, c.Update("Algebra", "Letters too"))
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Algebra", c.Name)
	assert.Equal(t, created, c.CreatedAt)
	assert.False(t, c.UpdatedAt.Before(created))

	err = c.Update("", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Algebra", c.Name, "failed update leaves the record untouched")
}

func TestNewLesson(t *testing.T) {
	l, err := NewLesson(3, " Fractions ", "body")
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.CategoryID)
	assert.Equal(t, "Fractions", l.Title)

	_, err = NewLesson(0, "Fractions", "")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewLesson(1, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewRole(t *testing.T) {
	r, err := NewRole("editor", "Can edit lessons")
	require.NoError(t, err)
	assert.Equal(t, "editor", r.Name)

	_, err = NewRole("", "")
	assert.ErrorIs(t, err, ErrValidation)
}
