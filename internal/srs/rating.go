// internal/srs/rating.go
package srs

// Rating は復習時のユーザー評価を表します
type Rating string

const (
	RatingAgain Rating = "Again" // 完全に忘れていた
	RatingHard  Rating = "Hard"  // 思い出せたが苦労した
	RatingGood  Rating = "Good"  // 問題なく思い出せた
	RatingEasy  Rating = "Easy"  // 簡単すぎた
)

// ParseRating は文字列を Rating に変換します。
// 閉じた列挙以外の値は ok=false で拒否します（ポリシー関数に渡る前にここで弾く）。
func ParseRating(s string) (Rating, bool) {
	switch Rating(s) {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return Rating(s), true
	}
	return "", false
}

// RatingFilter はキューの絞り込みに使う粗いフィルタ値です
type RatingFilter string

const (
	FilterAll       RatingFilter = "all"
	FilterAgain     RatingFilter = RatingFilter(RatingAgain)
	FilterHard      RatingFilter = RatingFilter(RatingHard)
	FilterGood      RatingFilter = RatingFilter(RatingGood)
	FilterEasy      RatingFilter = RatingFilter(RatingEasy)
	FilterDifficult RatingFilter = "Difficult" // 直近評価が Again または Hard
	FilterLearned   RatingFilter = "Learned"   // 直近評価が Good または Easy
)

// ParseRatingFilter は文字列を RatingFilter に変換します
func ParseRatingFilter(s string) (RatingFilter, bool) {
	switch RatingFilter(s) {
	case FilterAll, FilterAgain, FilterHard, FilterGood, FilterEasy, FilterDifficult, FilterLearned:
		return RatingFilter(s), true
	}
	return "", false
}

// Matches は「カードの直近評価」がこのフィルタに合致するかを返します。
// 一度も評価されていないカードはどのフィルタにも合致しません（all はフィルタ前に短絡する）。
func (f RatingFilter) Matches(latest Rating) bool {
	switch f {
	case FilterDifficult:
		return latest == RatingAgain || latest == RatingHard
	case FilterLearned:
		return latest == RatingGood || latest == RatingEasy
	default:
		return Rating(f) == latest
	}
}
