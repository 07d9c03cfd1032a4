package impl

import (
	"io"
	"log/slog"
	"time"

	"passage/config"
	"passage/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(skipEmailVerification bool) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:            12,
			SkipEmailVerification: skipEmailVerification,
			SessionTokenTTL:       7 * 24 * time.Hour,
			VerificationTokenTTL:  48 * time.Hour,
		},
	}
	cfg.SecretKey.Signing = "test-secret"
	cfg.Frontend.BaseURL = "https://app.example.com"

	return cfg
}

func serviceClaims(userID uuid.UUID, email string) *service.Claims {
	return &service.Claims{UserID: userID, Email: email}
}
