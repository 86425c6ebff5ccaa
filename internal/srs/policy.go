// internal/srs/policy.go
package srs

import (
	"math"
	"time"
)

// Steps は固定の復習間隔ラダー（日数）です。
// 間隔を連続計算せず小さな固定ラダーに留めることで、間隔の暴走を防ぎ挙動を予測可能にしています。
var Steps = [4]int{1, 3, 7, 30}

const (
	// DefaultEase は未レビューカードの初期 ease です
	DefaultEase = 2.5
	// MinEase は ease の下限です
	MinEase = 1.3
)

// StepIndex は現在の間隔日数を対応するラダー段のインデックスに写します。
//   - 0 以下       → -1（まだラダーに乗っていない）
//   - ラダー値と一致 → そのインデックス
//   - 中間の値     → 最初に超えるラダー値のひとつ手前（0 未満には丸めない）
//   - 最大値超え   → 最終インデックス
func StepIndex(intervalDays int) int {
	if intervalDays <= 0 {
		return -1
	}
	for i, step := range Steps {
		if step == intervalDays {
			return i
		}
	}
	for i, step := range Steps {
		if intervalDays < step {
			if i-1 < 0 {
				return 0
			}
			return i - 1
		}
	}
	return len(Steps) - 1
}

// Snapshot はカードのスケジューリング位置（ReviewState の数値部分）です
type Snapshot struct {
	Ease         float64
	IntervalDays int
	Reps         int
	Lapses       int
}

// DefaultSnapshot は ReviewState が存在しないカードの既定値を返します。
// null 許容フィールドに頼らず、欠損ケースを明示的に既定値で構築します。
func DefaultSnapshot() Snapshot {
	return Snapshot{Ease: DefaultEase}
}

// Result は評価適用後の次状態と期日です
type Result struct {
	Snapshot
	DueDate time.Time
}

// Next は (現在状態, 評価) から次状態を計算する純粋な遷移関数です。
// today はローカル日境界に切り詰めて使います。数値域に対して全域で定義されており、
// 評価値の検証は ParseRating を通す呼び出し側の責務です。
func Next(current Snapshot, rating Rating, today time.Time) Result {
	day := StartOfLocalDay(today)

	switch rating {
	case RatingAgain:
		// 完全失敗: 間隔と反復回数をリセットし、同日中に再出題する
		return Result{
			Snapshot: Snapshot{
				Ease:         math.Max(MinEase, current.Ease-0.2),
				IntervalDays: 0,
				Reps:         0,
				Lapses:       current.Lapses + 1,
			},
			DueDate: day,
		}

	case RatingHard:
		// 現在の段に留まる（段 -1 のときは段 0）。
		// 間隔が非ゼロのカードを Hard と評価し続けても段は進まず ease だけが下がる。
		// これは仕様上の「現在の難度に留まる」ポリシーであり、修正しないこと。
		step := StepIndex(current.IntervalDays)
		if step < 0 {
			step = 0
		}
		interval := Steps[step]
		return Result{
			Snapshot: Snapshot{
				Ease:         math.Max(MinEase, current.Ease-0.05),
				IntervalDays: interval,
				Reps:         current.Reps + 1,
				Lapses:       current.Lapses,
			},
			DueDate: AddDays(day, interval),
		}

	case RatingEasy:
		// 段 0 に切り上げてから 2 段進む。
		// 新規カード（段 -1）は 0+2 → ラダー[2]=7 日になる（-1+2 → 3 日ではない）。
		step := StepIndex(current.IntervalDays)
		if step < 0 {
			step = 0
		}
		step += 2
		if step > len(Steps)-1 {
			step = len(Steps) - 1
		}
		interval := Steps[step]
		return Result{
			Snapshot: Snapshot{
				Ease:         current.Ease + 0.15,
				IntervalDays: interval,
				Reps:         current.Reps + 1,
				Lapses:       current.Lapses,
			},
			DueDate: AddDays(day, interval),
		}

	default:
		// Good: ちょうど 1 段進む。ease は変更しない。
		step := StepIndex(current.IntervalDays) + 1
		if step > len(Steps)-1 {
			step = len(Steps) - 1
		}
		interval := Steps[step]
		return Result{
			Snapshot: Snapshot{
				Ease:         current.Ease,
				IntervalDays: interval,
				Reps:         current.Reps + 1,
				Lapses:       current.Lapses,
			},
			DueDate: AddDays(day, interval),
		}
	}
}
