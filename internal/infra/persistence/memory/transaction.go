package memory

import (
	"context"

	"passage/internal/domain/repository"
)

// transactionManager runs the callback against the shared store. The
// in-memory layer has no rollback, callers get at-most-once application
// of each repository call instead.
type transactionManager struct {
	users repository.UserRepository
}

// NewTransactionManager creates a transaction manager over the given
// in-memory repositories.
func NewTransactionManager(users repository.UserRepository) repository.TransactionManager {
	return &transactionManager{users: users}
}

func (m *transactionManager) Execute(_ context.Context, fn func(factory repository.RepositoryFactory) error) error {
	return fn(&repositoryFactory{users: m.users})
}

type repositoryFactory struct {
	users repository.UserRepository
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return f.users
}
