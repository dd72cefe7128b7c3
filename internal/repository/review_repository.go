// internal/repository/review_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.SRSReview) error // トランザクション対応
	FindByUserAndCard(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.SRSReview, error)
	Update(ctx context.Context, tx *gorm.DB, review *model.SRSReview) error
	FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.SRSReview, error) // CardはPreloadする
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

func (r *gormReviewRepository) Create(ctx context.Context, tx *gorm.DB, review *model.SRSReview) error {
	// (user_id, card_id) の複合ユニーク制約違反はGORMがErrorで返す
	result := tx.WithContext(ctx).Create(review)
	return result.Error
}

func (r *gormReviewRepository) FindByUserAndCard(ctx context.Context, db *gorm.DB, userID, cardID uuid.UUID) (*model.SRSReview, error) {
	var review model.SRSReview
	result := db.WithContext(ctx).Where("user_id = ? AND card_id = ?", userID, cardID).First(&review)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &review, nil
}

func (r *gormReviewRepository) Update(ctx context.Context, tx *gorm.DB, review *model.SRSReview) error {
	result := tx.WithContext(ctx).Save(review)
	return result.Error
}

func (r *gormReviewRepository) FindDueByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*model.SRSReview, error) {
	var reviews []*model.SRSReview

	// Cardが削除されたレビューは返さない (JOINで絞り込んだ上でPreloadする)
	result := db.WithContext(ctx).
		Preload("Card").
		Joins("JOIN cards ON cards.card_id = srs_reviews.card_id").
		Where("srs_reviews.user_id = ? AND srs_reviews.due_at <= ?", userID, now).
		Order("srs_reviews.due_at ASC").
		Limit(limit).
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}
	return reviews, nil
}
