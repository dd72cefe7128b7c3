// internal/service/scheduler_test.go
package service

import (
	"testing"
	"time"

	"flash_decks/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySM2(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		before         model.SRSReview
		quality        int
		wantReps       int
		wantInterval   int
		wantEasiness   float64
	}{
		{
			name:         "初回レビュー: 高評価で間隔1日",
			before:       model.SRSReview{Repetitions: 0, IntervalDays: 1, Easiness: 2.5},
			quality:      5,
			wantReps:     1,
			wantInterval: 1,
			wantEasiness: 2.6,
		},
		{
			name:         "2回目のレビュー: 間隔6日",
			before:       model.SRSReview{Repetitions: 1, IntervalDays: 1, Easiness: 2.5},
			quality:      4,
			wantReps:     2,
			wantInterval: 6,
			wantEasiness: 2.5,
		},
		{
			name:         "3回目以降: 間隔はeasiness倍 (round(6*2.5)=15)",
			before:       model.SRSReview{Repetitions: 2, IntervalDays: 6, Easiness: 2.5},
			quality:      5,
			wantReps:     3,
			wantInterval: 15,
			wantEasiness: 2.6,
		},
		{
			name:         "quality=4はeasinessを変えない",
			before:       model.SRSReview{Repetitions: 2, IntervalDays: 6, Easiness: 2.5},
			quality:      4,
			wantReps:     3,
			wantInterval: 15,
			wantEasiness: 2.5,
		},
		{
			name:         "quality=3はeasinessを下げる",
			before:       model.SRSReview{Repetitions: 2, IntervalDays: 6, Easiness: 2.5},
			quality:      3,
			wantReps:     3,
			wantInterval: 15,
			wantEasiness: 2.36,
		},
		{
			name:         "想起失敗 (quality<3) はリセット",
			before:       model.SRSReview{Repetitions: 5, IntervalDays: 30, Easiness: 2.5},
			quality:      2,
			wantReps:     0,
			wantInterval: 1,
			wantEasiness: 2.18,
		},
		{
			name:         "quality=0はeasinessを大きく下げる",
			before:       model.SRSReview{Repetitions: 3, IntervalDays: 15, Easiness: 2.5},
			quality:      0,
			wantReps:     0,
			wantInterval: 1,
			wantEasiness: 1.7,
		},
		{
			name:         "easinessは1.3を下回らない",
			before:       model.SRSReview{Repetitions: 1, IntervalDays: 1, Easiness: 1.3},
			quality:      0,
			wantReps:     0,
			wantInterval: 1,
			wantEasiness: 1.3,
		},
		{
			name:         "easiness下限付近でも間隔は最低1日",
			before:       model.SRSReview{Repetitions: 0, IntervalDays: 1, Easiness: 1.3},
			quality:      3,
			wantReps:     1,
			wantInterval: 1,
			wantEasiness: 1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review := tt.before
			err := ApplySM2(&review, tt.quality, now)

			require.NoError(t, err)
			assert.Equal(t, tt.wantReps, review.Repetitions)
			assert.Equal(t, tt.wantInterval, review.IntervalDays)
			assert.InDelta(t, tt.wantEasiness, review.Easiness, 0.0001)
			require.NotNil(t, review.LastQuality)
			assert.Equal(t, tt.quality, *review.LastQuality)
			assert.Equal(t, now.AddDate(0, 0, tt.wantInterval), review.DueAt)
		})
	}
}

func TestApplySM2_InvalidQuality(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, quality := range []int{-1, 6, 100} {
		before := model.SRSReview{
			ReviewID:     uuid.New(),
			Repetitions:  2,
			IntervalDays: 6,
			Easiness:     2.5,
		}
		review := before

		err := ApplySM2(&review, quality, now)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
		// 失敗時はレビュー状態が一切変更されないこと
		assert.Equal(t, before, review)
	}
}
