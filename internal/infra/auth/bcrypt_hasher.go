// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"passage/config"
	domainerrors "passage/internal/domain/errors"
	"passage/internal/domain/service"
)

// bcrypt rejects anything longer than 72 bytes; make the policy explicit
// instead of relying on the library error.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt handles salt generation, so identical inputs produce distinct hashes.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("password must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", domainerrors.ErrValidationFailed.WrapMessage("password exceeds 72 bytes")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrInternalError.WrapMessage("failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// A plain mismatch is (false, nil); a stored hash that bcrypt cannot parse at
// all is reported as data corruption.
func (h *bcryptHasher) Check(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if isMalformedHash(err) {
		return false, domainerrors.ErrDataCorruption.WrapMessage("stored password hash is malformed")
	}

	return false, nil
}

// isMalformedHash distinguishes structural hash errors from a mismatch.
func isMalformedHash(err error) bool {
	switch err.(type) {
	case bcrypt.InvalidHashPrefixError, bcrypt.HashVersionTooNewError, bcrypt.InvalidCostError:
		return true
	}

	return err == bcrypt.ErrHashTooShort
}
