// internal/repository/card_repository.go
package repository

import (
	"context"
	"errors"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error)
	CountByDeck(ctx context.Context, db *gorm.DB, deckID uuid.UUID) (int64, error)
}

type gormCardRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := db.WithContext(ctx).Where("card_id = ?", cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

func (r *gormCardRepository) CountByDeck(ctx context.Context, db *gorm.DB, deckID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Card{}).Where("deck_id = ?", deckID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
