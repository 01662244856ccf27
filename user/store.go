package user

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when attempting to create a user with an existing email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store defines the interface for user persistence operations.
type Store interface {
	// Create creates a new user in the store.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves an active user by ID.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves an active user by email address.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
