// internal/service/scheduler.go
package service

import (
	"math"
	"time"

	"flash_decks/internal/model"
)

// SM-2のデフォルト値
const (
	DefaultEasiness = 2.5
	MinEasiness     = 1.3 // 低評価が続いてもこれより下がらない
)

// ApplySM2 はSM-2アルゴリズムでレビュー状態を更新します。reviewはインプレースで変更される。
// quality は 0 (完全に忘却) から 5 (完璧な想起) の整数。範囲外はErrInvalidInputで
// 失敗し、reviewは一切変更されない。
//
// 次回間隔の丸めは math.Round (四捨五入、正の値ではround-half-upと同じ)。
// 例: interval=6, easiness=2.5, quality=5 -> round(6*2.5)=15
func ApplySM2(review *model.SRSReview, quality int, now time.Time) error {
	if quality < 0 || quality > 5 {
		return model.NewAppError("INVALID_QUALITY", "品質評価は0から5の間で指定してください。", "quality", model.ErrInvalidInput)
	}

	if quality < 3 {
		// 想起失敗は習熟度によらず振り出しに戻す
		review.Repetitions = 0
		review.IntervalDays = 1
	} else {
		switch review.Repetitions {
		case 0:
			review.Repetitions = 1
			review.IntervalDays = 1
		case 1:
			review.Repetitions = 2
			review.IntervalDays = 6
		default:
			// 間隔の計算には更新前のeasinessを使う
			next := int(math.Round(float64(review.IntervalDays) * review.Easiness))
			if next < 1 {
				next = 1
			}
			review.IntervalDays = next
			review.Repetitions++
		}
	}

	q := float64(quality)
	easiness := review.Easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	review.Easiness = math.Max(MinEasiness, easiness)

	review.LastQuality = &quality
	review.DueAt = now.AddDate(0, 0, review.IntervalDays)

	return nil
}
