// internal/model/study.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizMode は学習セッションのモード
type QuizMode string

const (
	QuizModeReview   QuizMode = "review"   // 品質自己評価つきSRS復習
	QuizModePractice QuizMode = "practice" // 自動採点つき練習 (BASICを除く)
	QuizModeExam     QuizMode = "exam"     // 全カード自動採点
	QuizModeFlagged  QuizMode = "flagged"  // フラグ付きカードの再学習
)

// QuizStatus はセッションの状態。遷移は ACTIVE -> COMPLETED の一方向のみ。
type QuizStatus string

const (
	QuizStatusActive    QuizStatus = "active"
	QuizStatusCompleted QuizStatus = "completed"
)

// SessionConfig はセッション設定。自由形式のmapではなく
// 認識されるキーだけを持つクローズドな構造体として扱う。
type SessionConfig struct {
	Endless bool `json:"endless"`
}

// QuizSession はユーザーによるデッキ1回分の学習セッションを表します
type QuizSession struct {
	SessionID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"session_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	DeckID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"deck_id"`
	Mode      QuizMode       `gorm:"not null" json:"mode"`
	Status    QuizStatus     `gorm:"not null" json:"status"`
	Config    *SessionConfig `gorm:"serializer:json" json:"config,omitempty"`
	StartedAt time.Time      `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time     `json:"ended_at,omitempty"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// QuizResponse はセッション内の1回の解答を表します。作成後は変更されない。
type QuizResponse struct {
	ResponseID uuid.UUID `gorm:"type:uuid;primaryKey" json:"response_id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	CardID     uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	UserAnswer string    `json:"user_answer"`
	Quality    *int      `json:"quality,omitempty"`   // REVIEWモードの自己評価 (0-5)
	IsCorrect  *bool     `json:"is_correct"`          // 自動採点されない場合はnull
	CreatedAt  time.Time `json:"created_at"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

// SRSReview は(ユーザー, カード)ごとの間隔反復の状態を表します。
// REVIEWモードで最初に品質評価が送られたときに遅延作成され、以後削除されない。
type SRSReview struct {
	ReviewID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"review_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_card,unique" json:"-"`
	CardID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_card,unique" json:"card_id"`
	Repetitions  int       `gorm:"not null" json:"repetitions"`   // 連続正解回数
	IntervalDays int       `gorm:"not null" json:"interval_days"` // 次回復習までの日数 (>= 1)
	Easiness     float64   `gorm:"not null" json:"easiness"`      // 1.3が下限
	LastQuality  *int      `json:"last_quality,omitempty"`
	DueAt        time.Time `gorm:"not null;index" json:"due_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Card *Card `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (SRSReview) TableName() string {
	return "srs_reviews"
}

// UserDeckProgress は(ユーザー, デッキ)ごとの進捗集計を表します
type UserDeckProgress struct {
	ProgressID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_deck,unique" json:"-"`
	DeckID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_deck,unique" json:"deck_id"`
	PercentComplete float64    `gorm:"not null" json:"percent_complete"` // [0, 100]
	LastStudiedAt   *time.Time `json:"last_studied_at,omitempty"`
	Pinned          bool       `gorm:"not null;default:false" json:"pinned"`
	Streak          int        `gorm:"not null" json:"streak"` // 旧デッキ別カウンタ。単調非減少、一度解答したら最低1
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (UserDeckProgress) TableName() string {
	return "user_deck_progress"
}
