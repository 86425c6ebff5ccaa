// internal/model/deck.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck はカードの集まり（学習単位）を表します
type Deck struct {
	DeckID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"deck_id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Cards []*Card `gorm:"foreignKey:DeckID;references:DeckID" json:"-"`
}

func (Deck) TableName() string {
	return "decks"
}

// デッキ作成リクエストDTO
type PostDeckRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// デッキ更新リクエストDTO
type PutDeckRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DeckSummary はデッキ一覧用のレスポンスDTO（本日の復習件数付き）
type DeckSummary struct {
	Deck     *Deck `json:"deck"`
	DueCount int64 `json:"due_count"`
	NewCount int64 `json:"new_count"`
}
