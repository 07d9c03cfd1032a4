// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passage/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence. They let the application layer
// handle specific outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a create hits the email uniqueness constraint.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
//
// The backing store must enforce a uniqueness constraint on email: of two
// concurrent Create calls for the same email, at least one fails with
// ErrEmailTaken.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address,
	// including the stored password hash.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error
}
