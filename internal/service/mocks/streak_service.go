// internal/service/mocks/streak_service.go
package mocks

import (
	"context"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// StreakService は service.StreakService のモック
type StreakService struct {
	mock.Mock
}

func (m *StreakService) UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *StreakService) GetStreakStats(ctx context.Context, userID uuid.UUID) (*model.StreakStatsResponse, error) {
	args := m.Called(ctx, userID)
	var stats *model.StreakStatsResponse
	if args.Get(0) != nil {
		stats = args.Get(0).(*model.StreakStatsResponse)
	}
	return stats, args.Error(1)
}
