// internal/model/draft.go
package model

// WordHelperRequest は語彙カードドラフト生成リクエストDTO
type WordHelperRequest struct {
	Word string `json:"word" validate:"required,alpha,max=100"`
}

// ImageOption はドラフトに添える画像候補です
type ImageOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CardDraft は辞書・画像検索から組み立てたカードの下書きです。
// 外部APIが使えない場合もテンプレートで全フィールドを埋めて返します。
type CardDraft struct {
	Word              string        `json:"word"`
	TargetWord        string        `json:"target_word"`
	Phonetic          *string       `json:"phonetic,omitempty"`
	AudioURL          *string       `json:"audio_url,omitempty"`
	FrontText         string        `json:"front_text"`
	ExampleOptions    []string      `json:"example_options"`
	BackText          string        `json:"back_text"`
	DefinitionOptions []string      `json:"definition_options"`
	ImageURL          string        `json:"image_url,omitempty"`
	ImageOptions      []ImageOption `json:"image_options"`
	Tags              string        `json:"tags"`
	Level             int           `json:"level"`
}

// WordHelperResponse はドラフト生成レスポンスDTO
type WordHelperResponse struct {
	Draft *CardDraft `json:"draft"`
}
