// Package memory provides an in-memory persistence layer for local
// development and tests, matching the behavior of the PostgreSQL layer.
package memory

import (
	"context"
	"sync"
	"time"

	"passage/internal/domain/entity"
	"passage/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(r.byID[id]), nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return repository.ErrEmailTaken
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	return nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if user.Email != current.Email {
		if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
			return repository.ErrEmailTaken
		}
		delete(r.byEmail, current.Email)
		r.byEmail[user.Email] = user.ID
	}

	user.UpdatedAt = time.Now()
	r.byID[user.ID] = cloneUser(user)

	return nil
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user

	return &clone
}
