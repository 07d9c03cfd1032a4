package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passage/config"
	domainerrors "passage/internal/domain/errors"
)

func newTestTokenService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			SessionTokenTTL:      7 * 24 * time.Hour,
			VerificationTokenTTL: 48 * time.Hour,
		},
	}
	cfg.SecretKey.Signing = "test-signing-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{
		Auth: &config.AuthConfig{},
	})
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	token, err := svc.Issue(userID, "alice@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(uuid.New(), "alice@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(uuid.New(), "alice@example.com", time.Hour)
	require.NoError(t, err)

	// Flip the first character of the signature segment. All six of its bits
	// survive base64 decoding, unlike the final character's padding bits, so
	// the decoded signature is guaranteed to change.
	dot := strings.LastIndexByte(token, '.')
	require.Greater(t, dot, 0)
	tampered := []byte(token)
	pos := dot + 1
	if tampered[pos] == 'A' {
		tampered[pos] = 'B'
	} else {
		tampered[pos] = 'A'
	}

	_, err = svc.Verify(string(tampered))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	otherCfg := &config.Config{Auth: &config.AuthConfig{}}
	otherCfg.SecretKey.Signing = "another-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New(), "alice@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_GarbageInput(t *testing.T) {
	svc := newTestTokenService(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	}
}

func TestJWTService_TTLGetters(t *testing.T) {
	svc := newTestTokenService(t)

	assert.Equal(t, 7*24*time.Hour, svc.SessionTTL())
	assert.Equal(t, 48*time.Hour, svc.VerificationTTL())
}
