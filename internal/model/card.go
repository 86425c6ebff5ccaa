// internal/model/card.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card は学習カード1枚を表します。
// スケジューラはCardのフィールドを一切変更しません（スケジューリング状態は ReviewState が持つ）。
type Card struct {
	CardID     uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	DeckID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"deck_id"`
	TargetWord *string        `json:"target_word"`                 // 学習対象の単語 (任意)
	Phonetic   *string        `json:"phonetic"`                    // 発音記号 (任意)
	AudioURL   *string        `json:"audio_url"`                   // 音声URL (任意)
	FrontText  string         `gorm:"not null" json:"front_text"`  // 表面 (出題文)
	BackText   string         `gorm:"not null" json:"back_text"`   // 裏面 (答え)
	ImageURL   *string        `json:"image_url"`                   // 画像URL (任意)
	Tags       *string        `json:"tags"`                        // カンマ区切りタグ (任意)
	Level      *int           `json:"level"`                       // 難易度 1-10 (任意)
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	ReviewState *ReviewState `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// カード作成リクエストDTO
type PostCardRequest struct {
	TargetWord *string `json:"target_word,omitempty" validate:"omitempty,max=100"`
	Phonetic   *string `json:"phonetic,omitempty" validate:"omitempty,max=100"`
	AudioURL   *string `json:"audio_url,omitempty" validate:"omitempty,url,startswith=http"`
	FrontText  string  `json:"front_text" validate:"required,max=500"`
	BackText   string  `json:"back_text" validate:"required,max=1000"`
	ImageURL   *string `json:"image_url,omitempty" validate:"omitempty,url,startswith=http"`
	Tags       *string `json:"tags,omitempty"`
	Level      *int    `json:"level,omitempty" validate:"omitempty,min=1,max=10"`
}

// カード更新（部分）リクエストDTO
type PatchCardRequest struct {
	TargetWord *string `json:"target_word,omitempty" validate:"omitempty,max=100"`
	Phonetic   *string `json:"phonetic,omitempty" validate:"omitempty,max=100"`
	AudioURL   *string `json:"audio_url,omitempty" validate:"omitempty,url,startswith=http"`
	FrontText  *string `json:"front_text,omitempty" validate:"omitempty,min=1,max=500"`
	BackText   *string `json:"back_text,omitempty" validate:"omitempty,min=1,max=1000"`
	ImageURL   *string `json:"image_url,omitempty" validate:"omitempty,url,startswith=http"`
	Tags       *string `json:"tags,omitempty"`
	Level      *int    `json:"level,omitempty" validate:"omitempty,min=1,max=10"`
}

// CSVインポートリクエストDTO (text/csv ボディの代わりにJSONで渡す場合)
type ImportCSVRequest struct {
	CSVText string `json:"csv_text" validate:"required"`
}

// CSVインポート結果レスポンスDTO
type ImportCSVResponse struct {
	Created int `json:"created"`
}

// スマートインポート (単語リストCSVからのカード自動生成) リクエストDTO
type ImportWordsRequest struct {
	CSVText string `json:"csv_text" validate:"required"`
	Limit   *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}

// スマートインポート結果レスポンスDTO。
// サンプルの各リストは先頭10件までに切り詰める。
type ImportWordsResponse struct {
	Imported       int      `json:"imported"`
	Skipped        int      `json:"skipped"`
	Errors         int      `json:"errors"`
	DetectedColumn string   `json:"detected_column"`
	ImportedWords  []string `json:"imported_words"`
	SkippedWords   []string `json:"skipped_words"`
	ErrorWords     []string `json:"error_words"`
}
