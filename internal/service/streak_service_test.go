// internal/service/streak_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"flash_decks/internal/model"
	"flash_decks/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 固定クロックでサービスを組み立てるヘルパー
func newStreakServiceForTest(repo *mocks.UserRepository, now time.Time) *streakService {
	return &streakService{
		db:       nil,
		userRepo: repo,
		now:      func() time.Time { return now },
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func TestUpdateStreak(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2025, 6, 10, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name             string
		lastActivity     *time.Time
		currentStreak    int
		longestStreak    int
		wantCurrent      int
		wantLongest      int
		wantUpdateCalled bool
	}{
		{
			name:             "初回の学習でストリーク1",
			lastActivity:     nil,
			currentStreak:    0,
			longestStreak:    0,
			wantCurrent:      1,
			wantLongest:      1,
			wantUpdateCalled: true,
		},
		{
			name:             "同日の再完了は冪等 (更新しない)",
			lastActivity:     ptrTime(day(2025, time.June, 10)),
			currentStreak:    3,
			longestStreak:    5,
			wantCurrent:      3,
			wantLongest:      5,
			wantUpdateCalled: false,
		},
		{
			name:             "前日から継続でインクリメント",
			lastActivity:     ptrTime(day(2025, time.June, 9)),
			currentStreak:    3,
			longestStreak:    5,
			wantCurrent:      4,
			wantLongest:      5,
			wantUpdateCalled: true,
		},
		{
			name:             "最長記録を更新",
			lastActivity:     ptrTime(day(2025, time.June, 9)),
			currentStreak:    5,
			longestStreak:    5,
			wantCurrent:      6,
			wantLongest:      6,
			wantUpdateCalled: true,
		},
		{
			name:             "2日空くとリセット (最長記録は維持)",
			lastActivity:     ptrTime(day(2025, time.June, 8)),
			currentStreak:    7,
			longestStreak:    10,
			wantCurrent:      1,
			wantLongest:      10,
			wantUpdateCalled: true,
		},
		{
			name:             "1週間空いてもリセットは同じ",
			lastActivity:     ptrTime(day(2025, time.June, 3)),
			currentStreak:    2,
			longestStreak:    4,
			wantCurrent:      1,
			wantLongest:      4,
			wantUpdateCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.UserRepository)
			svc := newStreakServiceForTest(mockRepo, today)

			user := &model.User{
				UserID:           userID,
				CurrentStreak:    tt.currentStreak,
				LongestStreak:    tt.longestStreak,
				LastActivityDate: tt.lastActivity,
			}
			mockRepo.On("FindByID", ctx, mock.Anything, userID).Return(user, nil)
			if tt.wantUpdateCalled {
				mockRepo.On("Update", ctx, mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.CurrentStreak == tt.wantCurrent &&
						u.LongestStreak == tt.wantLongest &&
						u.LastActivityDate != nil &&
						u.LastActivityDate.Equal(day(2025, time.June, 10))
				})).Return(nil)
			}

			err := svc.UpdateStreak(ctx, nil, userID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, user.CurrentStreak)
			assert.Equal(t, tt.wantLongest, user.LongestStreak)
			mockRepo.AssertExpectations(t)
			if !tt.wantUpdateCalled {
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateStreak_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockRepo := new(mocks.UserRepository)
	svc := newStreakServiceForTest(mockRepo, time.Now())
	mockRepo.On("FindByID", ctx, mock.Anything, userID).Return(nil, model.ErrNotFound)

	err := svc.UpdateStreak(ctx, nil, userID)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetStreakStats(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name         string
		lastActivity *time.Time
		current      int
		longest      int
		wantCurrent  int
		wantActive   bool
		wantLastDate *string
	}{
		{
			name:         "今日学習済みならアクティブ",
			lastActivity: ptrTime(day(2025, time.June, 10)),
			current:      3,
			longest:      5,
			wantCurrent:  3,
			wantActive:   true,
			wantLastDate: ptrString("2025-06-10"),
		},
		{
			name:         "昨日まで学習していればまだアクティブ",
			lastActivity: ptrTime(day(2025, time.June, 9)),
			current:      3,
			longest:      5,
			wantCurrent:  3,
			wantActive:   true,
			wantLastDate: ptrString("2025-06-09"),
		},
		{
			name:         "2日空くと非アクティブで表示上は0",
			lastActivity: ptrTime(day(2025, time.June, 8)),
			current:      3,
			longest:      5,
			wantCurrent:  0,
			wantActive:   false,
			wantLastDate: ptrString("2025-06-08"),
		},
		{
			name:         "学習履歴なし",
			lastActivity: nil,
			current:      0,
			longest:      0,
			wantCurrent:  0,
			wantActive:   false,
			wantLastDate: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.UserRepository)
			svc := newStreakServiceForTest(mockRepo, today)

			user := &model.User{
				UserID:           userID,
				CurrentStreak:    tt.current,
				LongestStreak:    tt.longest,
				LastActivityDate: tt.lastActivity,
			}
			mockRepo.On("FindByID", ctx, mock.Anything, userID).Return(user, nil)

			stats, err := svc.GetStreakStats(ctx, userID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCurrent, stats.CurrentStreak)
			assert.Equal(t, tt.longest, stats.LongestStreak)
			assert.Equal(t, tt.wantActive, stats.IsActive)
			if tt.wantLastDate == nil {
				assert.Nil(t, stats.LastActivityDate)
			} else {
				require.NotNil(t, stats.LastActivityDate)
				assert.Equal(t, *tt.wantLastDate, *stats.LastActivityDate)
			}
			// 読み取り専用であること (保存値は変更されない)
			assert.Equal(t, tt.current, user.CurrentStreak)
			mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrString(s string) *string     { return &s }
