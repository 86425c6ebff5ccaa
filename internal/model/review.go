// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewState はカードごとのスケジューリング位置を表します。
// カードとは 0..1 の関係で、初回評価時に作成されて以降は上書き更新されます。
type ReviewState struct {
	CardID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"card_id"` // カードごとに高々1件
	Ease           float64    `gorm:"not null;default:2.5" json:"ease"`
	IntervalDays   int        `gorm:"not null;default:0" json:"interval_days"`
	DueDate        time.Time  `gorm:"not null;index" json:"due_date"` // ローカル日境界に切り詰めた値
	Reps           int        `gorm:"not null;default:0" json:"reps"`
	Lapses         int        `gorm:"not null;default:0" json:"lapses"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`

	// 関連 (Preload用)
	Card *Card `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (ReviewState) TableName() string {
	return "review_states"
}

// ReviewLog は評価1回分の監査行です。作成後は変更・削除されません。
type ReviewLog struct {
	LogID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"log_id"`
	CardID           uuid.UUID `gorm:"type:uuid;not null;index:idx_review_logs_card_reviewed" json:"card_id"`
	ReviewedAt       time.Time `gorm:"not null;index:idx_review_logs_card_reviewed" json:"reviewed_at"`
	Rating           string    `gorm:"not null" json:"rating"`
	PrevEase         float64   `gorm:"not null" json:"prev_ease"`
	NewEase          float64   `gorm:"not null" json:"new_ease"`
	PrevIntervalDays int       `gorm:"not null" json:"prev_interval_days"`
	NewIntervalDays  int       `gorm:"not null" json:"new_interval_days"`
	PrevReps         int       `gorm:"not null" json:"prev_reps"`
	NewReps          int       `gorm:"not null" json:"new_reps"`
	DueDateAfter     time.Time `gorm:"not null" json:"due_date_after"`
	CreatedAt        time.Time `json:"-"`
}

func (ReviewLog) TableName() string {
	return "review_logs"
}

// QueueItem は復習キューの1要素です。クエリごとに組み立てる一時的なビューで、永続化しません。
type QueueItem struct {
	Card        *Card        `json:"card"`
	ReviewState *ReviewState `json:"review_state"` // 新規カードでは nil
	IsNew       bool         `json:"is_new"`
}

// 評価送信リクエストDTO
type SubmitRatingRequest struct {
	CardID string `json:"card_id" validate:"required,uuid"`
	Rating string `json:"rating" validate:"required,oneof=Again Hard Good Easy"`
}

// QueueResponse は復習キューのレスポンスDTO
type QueueResponse struct {
	Queue []*QueueItem `json:"queue"`
}

// ReviewCounts は本日分の件数レスポンスDTO（UI表示用）
type ReviewCounts struct {
	Due int64 `json:"due"`
	New int64 `json:"new"`
}
