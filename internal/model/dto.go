// internal/model/dto.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// セッション作成リクエストDTO
type CreateSessionRequest struct {
	DeckID uuid.UUID      `json:"deck_id" validate:"required"`
	Mode   QuizMode       `json:"mode" validate:"required,oneof=review practice exam flagged"`
	Config *SessionConfig `json:"config,omitempty"`
}

// 解答送信リクエストDTO
type SubmitAnswerRequest struct {
	CardID     uuid.UUID `json:"card_id" validate:"required"`
	UserAnswer string    `json:"user_answer"`
	Quality    *int      `json:"quality,omitempty" validate:"omitempty,min=0,max=5"`
}

// SessionResponse はセッションのレスポンスDTO
type SessionResponse struct {
	SessionID uuid.UUID      `json:"session_id"`
	DeckID    uuid.UUID      `json:"deck_id"`
	Mode      QuizMode       `json:"mode"`
	Status    QuizStatus     `json:"status"`
	Config    *SessionConfig `json:"config,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   *time.Time     `json:"ended_at,omitempty"`
}

// AnswerResponse は解答記録のレスポンスDTO
type AnswerResponse struct {
	ResponseID uuid.UUID `json:"response_id"`
	SessionID  uuid.UUID `json:"session_id"`
	CardID     uuid.UUID `json:"card_id"`
	UserAnswer string    `json:"user_answer"`
	Quality    *int      `json:"quality,omitempty"`
	IsCorrect  *bool     `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// DueReviewResponse は復習期限が到来したカードのレスポンスDTO
type DueReviewResponse struct {
	CardID       uuid.UUID `json:"card_id"`
	DeckID       uuid.UUID `json:"deck_id"`
	DueAt        time.Time `json:"due_at"`
	Repetitions  int       `json:"repetitions"`
	IntervalDays int       `json:"interval_days"`
	Easiness     float64   `json:"easiness"`
}

// SessionStatsResponse はセッション内の解答集計
type SessionStatsResponse struct {
	TotalResponses  int `json:"total_responses"`
	CorrectCount    int `json:"correct_count"`
	IncorrectCount  int `json:"incorrect_count"`
	UnansweredCount int `json:"unanswered_count"` // is_correctがnull (自動採点なし) の件数
}

// StreakStatsResponse はストリーク統計の読み取り専用ビュー
type StreakStatsResponse struct {
	CurrentStreak    int     `json:"current_streak"` // 非アクティブ時は0を表示 (保存値は変更しない)
	LongestStreak    int     `json:"longest_streak"`
	LastActivityDate *string `json:"last_activity_date"` // "2006-01-02" 形式
	IsActive         bool    `json:"is_active"`
}
