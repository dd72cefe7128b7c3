// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.UserDeckProgress) error
	FindByUserAndDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (*model.UserDeckProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.UserDeckProgress) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.UserDeckProgress) error {
	// (user_id, deck_id) の複合ユニーク制約違反はGORMがErrorで返す
	result := tx.WithContext(ctx).Create(progress)
	return result.Error
}

func (r *gormProgressRepository) FindByUserAndDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (*model.UserDeckProgress, error) {
	var progress model.UserDeckProgress
	result := db.WithContext(ctx).Where("user_id = ? AND deck_id = ?", userID, deckID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.UserDeckProgress) error {
	result := tx.WithContext(ctx).Save(progress)
	return result.Error
}
