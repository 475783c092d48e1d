package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/lessonboard/lessonboard/internal/api/shared"
)

// CategoryRequest is the validated attribute set for storing or updating a category.
type CategoryRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// LessonRequest is the validated attribute set for storing or updating a lesson.
type LessonRequest struct {
	CategoryID shared.IntField `json:"category_id" validate:"required,gt=0"`
	Title      string          `json:"title"       validate:"required,max=255"`
	Content    string          `json:"content"`
}

// RoleRequest is the validated attribute set for storing or updating a role.
type RoleRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=12,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"omitempty,eqfield=Password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned to JSON clients by login, register and refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    string    `json:"expires_at"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}
