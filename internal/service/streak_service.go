// internal/service/streak_service.go
package service

import (
	"context"
	"time"

	"flash_decks/internal/middleware"
	"flash_decks/internal/model"
	"flash_decks/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakService インターフェース
type StreakService interface {
	// UpdateStreak はセッション完了1回につき1度だけ呼ばれる想定
	UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	GetStreakStats(ctx context.Context, userID uuid.UUID) (*model.StreakStatsResponse, error)
}

type streakService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	now      func() time.Time // テストで差し替えるための注入可能なクロック
}

func NewStreakService(db *gorm.DB, userRepo repository.UserRepository) StreakService {
	return &streakService{
		db:       db,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// truncateToDay は時刻を日付 (その日の00:00:00) に切り捨てます。
// 日付比較はサーバーの単一タイムゾーンで行う。
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpdateStreak は連続学習日数を更新します。
// 状態遷移 (last_activity_date と today の比較):
//   - 同日: 変更なし (同日内の再呼び出しは冪等)
//   - 前日: current_streak をインクリメント
//   - それ以外 (未設定、2日以上の間隔): current_streak = 1 にリセット
func (s *streakService) UpdateStreak(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		logger.Error("Failed to find user for streak update", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", err)
	}

	today := truncateToDay(s.now())

	if user.LastActivityDate != nil {
		last := truncateToDay(*user.LastActivityDate)
		if last.Equal(today) {
			logger.Debug("Streak already updated today, skipping")
			return nil
		}
		if last.Equal(today.AddDate(0, 0, -1)) {
			user.CurrentStreak++
		} else {
			user.CurrentStreak = 1
		}
	} else {
		user.CurrentStreak = 1
	}

	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	user.LastActivityDate = &today

	if err := s.userRepo.Update(ctx, tx, user); err != nil {
		logger.Error("Failed to update user streak", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ストリークの更新に失敗しました。", "", err)
	}

	logger.Info("Streak updated", "current_streak", user.CurrentStreak, "longest_streak", user.LongestStreak)
	return nil
}

// GetStreakStats はストリーク統計の読み取り専用ビューを返します。保存値は変更しない。
// is_active は最終学習日が今日または昨日の場合にtrue。
// 非アクティブな場合、表示上の current_streak は0になる。
func (s *streakService) GetStreakStats(ctx context.Context, userID uuid.UUID) (*model.StreakStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find user for streak stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザー情報の取得に失敗しました。", "", err)
	}

	stats := &model.StreakStatsResponse{
		LongestStreak: user.LongestStreak,
	}

	if user.LastActivityDate != nil {
		today := truncateToDay(s.now())
		last := truncateToDay(*user.LastActivityDate)
		formatted := last.Format(time.DateOnly)
		stats.LastActivityDate = &formatted
		stats.IsActive = !last.Before(today.AddDate(0, 0, -1))
	}
	if stats.IsActive {
		stats.CurrentStreak = user.CurrentStreak
	}

	return stats, nil
}
