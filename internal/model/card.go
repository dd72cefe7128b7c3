// internal/model/card.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CardType はカードの出題形式
type CardType string

const (
	CardTypeBasic          CardType = "basic"           // 自己評価のみ、自動採点なし
	CardTypeMultipleChoice CardType = "multiple_choice" // 選択肢から1つ選ぶ
	CardTypeShortAnswer    CardType = "short_answer"    // 記述式 (許容解答リストあり)
	CardTypeCloze          CardType = "cloze"           // 穴埋め (複数ブランク対応)
)

// ClozeAnswer は穴埋めブランクの許容解答。
// JSONでは単一文字列 ("Paris") と配列 (["Paris","París"]) の両形式を受け付ける。
type ClozeAnswer []string

func (a *ClozeAnswer) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = ClozeAnswer{single}
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err != nil {
		return err
	}
	*a = ClozeAnswer(multiple)
	return nil
}

// ClozeBlank は穴埋めカードの1つのブランク
type ClozeBlank struct {
	Answer ClozeAnswer `json:"answer"`
}

// ClozeData は穴埋めカードの構造データ。
// プロンプト内のブランクマーカーと同じ順序でBlanksを持つ。
type ClozeData struct {
	Blanks []ClozeBlank `json:"blanks"`
}

// Card は学習カードを表します
type Card struct {
	CardID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"card_id"`
	DeckID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"deck_id"`
	Type      CardType   `gorm:"not null" json:"type"`
	Prompt    string     `gorm:"not null" json:"prompt"`
	Answer    string     `gorm:"not null" json:"answer"`
	Options   []string   `gorm:"serializer:json" json:"options,omitempty"`    // MULTIPLE_CHOICE: 選択肢 / SHORT_ANSWER: 追加の許容解答
	ClozeData *ClozeData `gorm:"serializer:json" json:"cloze_data,omitempty"` // CLOZEのみ
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}
