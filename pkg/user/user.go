package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a platform account. The IsAdmin flag is platform-wide and
// orthogonal to any role the user holds inside a tenant.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store defines the persistence operations needed by the identity layer.
type Store interface {
	// GetByID retrieves a user by id. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *User) error
}
