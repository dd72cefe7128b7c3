// internal/repository/response_repository.go
package repository

import (
	"context"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, response *model.QuizResponse) error
	// CountByUserAndDeck はユーザーの全セッションを横断した解答行数を返す。
	// 同じカードへの重複解答も数える (進捗率の分子はカード数ではなく解答行数)。
	CountByUserAndDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (int64, error)
	ListBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]*model.QuizResponse, error)
}

type gormResponseRepository struct{}

func NewGormResponseRepository() ResponseRepository {
	return &gormResponseRepository{}
}

func (r *gormResponseRepository) Create(ctx context.Context, tx *gorm.DB, response *model.QuizResponse) error {
	result := tx.WithContext(ctx).Create(response)
	return result.Error
}

func (r *gormResponseRepository) CountByUserAndDeck(ctx context.Context, db *gorm.DB, userID, deckID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).
		Model(&model.QuizResponse{}).
		Joins("JOIN quiz_sessions ON quiz_sessions.session_id = quiz_responses.session_id").
		Where("quiz_sessions.user_id = ? AND quiz_sessions.deck_id = ?", userID, deckID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *gormResponseRepository) ListBySession(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) ([]*model.QuizResponse, error) {
	var responses []*model.QuizResponse
	result := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&responses)
	if result.Error != nil {
		return nil, result.Error
	}
	return responses, nil
}
