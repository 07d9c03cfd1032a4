package postgres

import (
	"context"

	"passage/internal/domain/entity"
	"passage/internal/domain/repository"
	"passage/internal/errors"
	"passage/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the GORM-backed user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var record model.UserModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toEntity(&record), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record model.UserModel
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toEntity(&record), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	record := toModel(user)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmailTaken
		}

		return errors.Wrap(err, "failed to create user")
	}

	// Persisted defaults (generated id, timestamps) flow back to the entity.
	*user = *toEntity(record)

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	record := toModel(user)
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"email":         record.Email,
			"name":          record.Name,
			"password_hash": record.PasswordHash,
			"is_verified":   record.IsVerified,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrEmailTaken
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func toEntity(record *model.UserModel) *entity.User {
	return &entity.User{
		ID:           record.ID,
		Email:        record.Email,
		Name:         record.Name,
		PasswordHash: record.PasswordHash,
		IsVerified:   record.IsVerified,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toModel(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
