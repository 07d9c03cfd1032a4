package memory

import (
	"context"
	"sync"
	"testing"

	"passage/internal/domain/entity"
	"passage/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Update(ctx, &entity.User{ID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@example.com", Name: "First"}))
	err := repo.Create(ctx, &entity.User{Email: "dup@example.com", Name: "Second"})
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			errs[slot] = repo.Create(ctx, &entity.User{Email: "race@example.com"})
		}(i)
	}
	wg.Wait()

	var succeeded, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, repository.ErrEmailTaken):
			taken++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, taken)
}

func TestUserRepository_UpdateEmailKeepsUniqueness(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	alice := &entity.User{Email: "alice@example.com", Name: "Alice"}
	bob := &entity.User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	bob.Email = "alice@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), repository.ErrEmailTaken)

	bob.Email = "bobby@example.com"
	require.NoError(t, repo.Update(ctx, bob))

	found, err := repo.FindByEmail(ctx, "bobby@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_FindReturnsCopy(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &entity.User{Email: "copy@example.com", Name: "Original"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.Name = "Mutated"

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}
