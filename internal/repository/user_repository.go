// internal/repository/user_repository.go
package repository

import (
	"context"
	"errors"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *model.User) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *gormUserRepository) Update(ctx context.Context, tx *gorm.DB, user *model.User) error {
	result := tx.WithContext(ctx).Save(user)
	return result.Error
}
