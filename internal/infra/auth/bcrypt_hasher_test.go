package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passage/config"
	domainerrors "passage/internal/domain/errors"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the test suite fast.
	return NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	ok, err := hasher.Check("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Check("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_DistinctHashesPerCall(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("same-input")
	require.NoError(t, err)
	second, err := hasher.Hash("same-input")
	require.NoError(t, err)

	// Salting makes repeated hashes of the same input differ.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_RejectsInvalidInput(t *testing.T) {
	hasher := newTestHasher()

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = hasher.Hash(strings.Repeat("x", maxPasswordBytes+1))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestBcryptHasher_MalformedStoredHash(t *testing.T) {
	hasher := newTestHasher()

	cases := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "garbage prefix", hash: "not-a-bcrypt-hash"},
		{name: "truncated", hash: "$2a$10$short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := hasher.Check("whatever", tc.hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, domainerrors.ErrDataCorruption)
		})
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MaxCost + 10},
	}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	hasher = NewBcryptHasher(nil).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
