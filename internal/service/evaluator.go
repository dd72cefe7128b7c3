// internal/service/evaluator.go
package service

import (
	"encoding/json"
	"strings"

	"flash_decks/internal/model"
)

// NormalizeAnswer は解答文字列を比較用に正規化します (前後の空白除去 + 小文字化)。
// 冪等: NormalizeAnswer(NormalizeAnswer(s)) == NormalizeAnswer(s)
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckAnswerCorrectness はカード形式ごとの採点ルールで解答の正誤を判定します。
// 純粋関数。空の解答は形式によらず不正解。
//
// 採点ルール:
//   - BASIC: 正解の基準がないため常にfalse (通常は自動採点自体を行わない)
//   - MULTIPLE_CHOICE: 大文字小文字を区別する完全一致
//   - SHORT_ANSWER: optionsがあれば許容解答リストとの正規化一致、なければanswerとの正規化一致
//   - CLOZE: checkClozeAnswer を参照
func CheckAnswerCorrectness(card *model.Card, userAnswer string) bool {
	if strings.TrimSpace(userAnswer) == "" {
		return false
	}

	switch card.Type {
	case model.CardTypeBasic:
		return false
	case model.CardTypeMultipleChoice:
		return userAnswer == card.Answer
	case model.CardTypeShortAnswer:
		normalized := NormalizeAnswer(userAnswer)
		if len(card.Options) > 0 {
			// optionsを許容解答の全集合として扱う (answerも慣例としてoptionsに含まれる)
			for _, acceptable := range card.Options {
				if normalized == NormalizeAnswer(acceptable) {
					return true
				}
			}
			return false
		}
		return normalized == NormalizeAnswer(card.Answer)
	case model.CardTypeCloze:
		return checkClozeAnswer(card, userAnswer)
	default:
		return false
	}
}

// checkClozeAnswer は穴埋めカードの解答を判定します。
// userAnswer はブランク順のJSON文字列配列 (例: `["France","Paris"]`)。
// デコード失敗・ブランク数不一致・いずれかのブランク不正解はすべてfalse。
// 採点不能な解答は不正解として扱い、エラーにはしない。
func checkClozeAnswer(card *model.Card, userAnswer string) bool {
	if card.ClozeData == nil || len(card.ClozeData.Blanks) == 0 {
		return false
	}

	var given []string
	if err := json.Unmarshal([]byte(userAnswer), &given); err != nil {
		return false
	}
	if len(given) != len(card.ClozeData.Blanks) {
		return false
	}

	for i, blank := range card.ClozeData.Blanks {
		normalized := NormalizeAnswer(given[i])
		matched := false
		for _, acceptable := range blank.Answer {
			if normalized == NormalizeAnswer(acceptable) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
