// Package usecase defines the application's use case interfaces and their
// input/output structures. Handlers depend on these interfaces, never on the
// implementations.
package usecase

import (
	"context"
	"time"

	"passage/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the data required to create a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	User entity.Identity `json:"user"`
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	AccessToken string          `json:"accessToken"`
	User        entity.Identity `json:"user"`
}

// VerifyEmailInput carries the signed token from the verification link.
type VerifyEmailInput struct {
	Token string `json:"token"`
}

// VerifyEmailOutput reports the outcome of a verification attempt.
type VerifyEmailOutput struct {
	Message string          `json:"message"`
	User    entity.Identity `json:"user"`
}

// ProfileOutput is the authenticated user's own account view.
type ProfileOutput struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AccountUsecase defines the account authentication flows.
type AccountUsecase interface {
	// Register creates an account with a hashed credential and kicks off
	// email verification.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login checks the presented credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// VerifyEmail consumes a verification token and marks the account
	// verified. Verifying an already-verified account succeeds without
	// changing anything.
	VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*VerifyEmailOutput, error)

	// Profile returns the account view for an authenticated user.
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)
}
