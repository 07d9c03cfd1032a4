// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, assigned at creation.
	Email        string    // The user's login identifier. Stored lower-cased; unique across all users.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt-hashed credential. Never leaves the auth service boundary.
	IsVerified   bool      // Whether the email address has been confirmed. Only ever flips false -> true.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// Identity is the safe-to-expose subset of a User returned by the auth
// operations. It never carries the password hash.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Identity returns the exposable identity of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
