package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the identity facts embedded in an issued token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed,
// expiring tokens. Tokens are stateless: validity is re-derived at
// verification time from the embedded signature and expiry, so nothing is
// stored server-side.
//
// Session and email-verification tokens share this one mechanism; the only
// difference is the TTL the caller picks. Rotating the signing secret
// invalidates every previously issued token.
type TokenService interface {
	// Issue creates a signed token carrying the user's id and email,
	// expiring ttl from now.
	Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error)

	// Verify checks the signature and expiry of a token and returns its
	// claims. Tampered, expired and malformed tokens all fail with the same
	// ErrInvalidToken so callers cannot distinguish the cases.
	Verify(tokenString string) (*Claims, error)

	// SessionTTL returns the configured lifetime for session tokens.
	SessionTTL() time.Duration

	// VerificationTTL returns the configured lifetime for email-verification tokens.
	VerificationTTL() time.Duration
}
