// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"passage/config"
	domainerrors "passage/internal/domain/errors"
	"passage/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing secret is injected once at construction; it is process
// configuration, and rotating it invalidates every outstanding token.
type jwtService struct {
	secret          []byte
	sessionTTL      time.Duration
	verificationTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret:          []byte(cfg.SecretKey.Signing),
		sessionTTL:      cfg.Auth.SessionTokenTTL,
		verificationTTL: cfg.Auth.VerificationTokenTTL,
	}, nil
}

// Issue creates a signed HS256 token carrying the user's identity claims,
// expiring ttl from now.
func (s *jwtService) Issue(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and returns its claims.
// Every failure mode (bad signature, expiry, garbage input) collapses into
// ErrInvalidToken so the error does not leak which check failed.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token verification failed")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("unexpected claims shape")
	}

	return parseClaims(mapClaims)
}

// SessionTTL returns the configured duration for session tokens.
func (s *jwtService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// VerificationTTL returns the configured duration for email-verification tokens.
func (s *jwtService) VerificationTTL() time.Duration {
	return s.verificationTTL
}

func parseClaims(mapClaims jwt.MapClaims) (*service.Claims, error) {
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("subject claim missing")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("subject claim is not a user id")
	}

	email, ok := mapClaims["email"].(string)
	if !ok || email == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("email claim missing")
	}

	return &service.Claims{
		UserID: userID,
		Email:  email,
	}, nil
}
