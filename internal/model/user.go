// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User は学習者を表します。認証情報の管理は外部の認可基盤が担うため、
// このサービスはストリーク関連のフィールドだけを更新する。
type User struct {
	UserID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email         string     `gorm:"uniqueIndex" json:"email"`
	CurrentStreak int        `gorm:"not null" json:"current_streak"` // 連続学習日数
	LongestStreak int        `gorm:"not null" json:"longest_streak"` // 過去最長
	// 日単位で比較する。時刻成分は常に 00:00:00 に切り捨てて保存する。
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
