// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error
	FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSession, error)
	Update(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error {
	// UUIDはService層で設定済み想定
	result := tx.WithContext(ctx).Create(session)
	return result.Error
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSession, error) {
	var session model.QuizSession
	result := db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *gormSessionRepository) Update(ctx context.Context, tx *gorm.DB, session *model.QuizSession) error {
	// 事前に存在確認している想定 (Saveは主キーに基づいてUpdateを行う)
	result := tx.WithContext(ctx).Save(session)
	return result.Error
}
