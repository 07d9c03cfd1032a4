package postgres

import (
	"context"

	"passage/internal/domain/repository"
	"passage/internal/errors"

	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a GORM-backed transaction manager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

func (m *gormTransactionManager) Execute(ctx context.Context, fn func(factory repository.RepositoryFactory) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositoryFactory{tx: tx})
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// gormRepositoryFactory hands out repositories bound to the active transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}
