// internal/service/card_service.go
package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go_flashdeck_keep/internal/config"
	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardService はカードのCRUDとCSV一括インポートを提供します
type CardService interface {
	CreateCard(ctx context.Context, deckID uuid.UUID, req *model.PostCardRequest) (*model.Card, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (*model.Card, error)
	UpdateCard(ctx context.Context, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
	// ImportCSV はCSVテキストを解析してデッキへ一括登録します。
	// 1行でも不正があれば全体を失敗させ、何も登録しません。
	ImportCSV(ctx context.Context, deckID uuid.UUID, csvText string) (int, error)
	// ImportWords は単語リストCSVから英単語の列を推定し、1語ずつ
	// 下書きを生成してカードを登録します。重複はスキップ、下書き生成や
	// 登録に失敗した単語はエラー件数に計上して続行します。
	ImportWords(ctx context.Context, deckID uuid.UUID, csvText string, limit int) (*model.ImportWordsResponse, error)
}

type cardService struct {
	db         *gorm.DB
	deckRepo   repository.DeckRepository
	cardRepo   repository.CardRepository
	wordHelper WordHelperService
}

func NewCardService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository, wordHelper WordHelperService) CardService {
	return &cardService{
		db:         db,
		deckRepo:   deckRepo,
		cardRepo:   cardRepo,
		wordHelper: wordHelper,
	}
}

func (s *cardService) CreateCard(ctx context.Context, deckID uuid.UUID, req *model.PostCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	card := &model.Card{
		CardID:     uuid.New(),
		DeckID:     deckID,
		TargetWord: req.TargetWord,
		Phonetic:   req.Phonetic,
		AudioURL:   req.AudioURL,
		FrontText:  req.FrontText,
		BackText:   req.BackText,
		ImageURL:   req.ImageURL,
		Tags:       req.Tags,
		Level:      req.Level,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// デッキの存在確認
		if _, err := s.deckRepo.FindByID(ctx, tx, deckID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
			}
			logger.Error("Error finding deck in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", model.ErrInternalServer)
		}
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			logger.Error("Error creating card in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card created", "card_id", card.CardID.String(), "deck_id", deckID.String())
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	card, err := s.cardRepo.FindByID(ctx, s.db, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
		}
		logger.Error("Error finding card", "error", err, "card_id", cardID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, cardID uuid.UUID, req *model.PatchCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)

	// 指定されたフィールドだけを更新対象にする (部分更新)
	updates := map[string]interface{}{}
	if req.TargetWord != nil {
		updates["target_word"] = *req.TargetWord
	}
	if req.Phonetic != nil {
		updates["phonetic"] = *req.Phonetic
	}
	if req.AudioURL != nil {
		updates["audio_url"] = *req.AudioURL
	}
	if req.FrontText != nil {
		updates["front_text"] = *req.FrontText
	}
	if req.BackText != nil {
		updates["back_text"] = *req.BackText
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Update(ctx, tx, cardID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
			}
			logger.Error("Error updating card in transaction", "error", err, "card_id", cardID.String())
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの更新に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	card, err := s.cardRepo.FindByID(ctx, s.db, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
		}
		logger.Error("Error reloading card after update", "error", err, "card_id", cardID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Card updated", "card_id", cardID.String())
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Delete(ctx, tx, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
			}
			logger.Error("Error deleting card in transaction", "error", err, "card_id", cardID.String())
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Card deleted", "card_id", cardID.String())
	return nil
}

// CSVで受け付けるヘッダ。front_text と back_text は必須列。
var csvColumns = map[string]bool{
	"target_word": true,
	"phonetic":    true,
	"audio_url":   true,
	"front_text":  true,
	"back_text":   true,
	"image_url":   true,
	"tags":        true,
	"level":       true,
}

func (s *cardService) ImportCSV(ctx context.Context, deckID uuid.UUID, csvText string) (int, error) {
	logger := middleware.GetLogger(ctx)

	cards, err := parseCSVCards(deckID, csvText)
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, model.NewAppError("INVALID_INPUT", "CSVに取り込めるデータ行がありません。", "csv_text", model.ErrInvalidInput)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.deckRepo.FindByID(ctx, tx, deckID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
			}
			logger.Error("Error finding deck in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "CSVインポートに失敗しました。", "", model.ErrInternalServer)
		}
		// 全行まとめて登録する。1行でも失敗すればロールバック。
		if err := s.cardRepo.CreateBatch(ctx, tx, cards); err != nil {
			logger.Error("Error creating cards in transaction", "error", err, "count", len(cards))
			return model.NewAppError("INTERNAL_SERVER_ERROR", "CSVインポートに失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("CSV import completed", "deck_id", deckID.String(), "created", len(cards))
	return len(cards), nil
}

// 学習対象として受け付ける英単語のパターン (小文字化・正規化後に判定)
var studyWordPattern = regexp.MustCompile(`^[a-z][a-z' -]*$`)

// 単語リストのヘッダ行とみなすセル値
var wordListHeaderCells = map[string]bool{
	"word":        true,
	"words":       true,
	"translation": true,
	"english":     true,
	"слово":       true,
}

// normalizeStudyWord は単語を比較用に正規化します (空白の圧縮、引用符の統一、小文字化)
func normalizeStudyWord(s string) string {
	s = strings.NewReplacer("’", "'", "`", "'").Replace(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

func (s *cardService) ImportWords(ctx context.Context, deckID uuid.UUID, csvText string, limit int) (*model.ImportWordsResponse, error) {
	logger := middleware.GetLogger(ctx)

	if limit < 1 {
		limit = config.DefaultImportWordsLimit
	}
	if limit > config.MaxImportWordsLimit {
		limit = config.MaxImportWordsLimit
	}

	rows, err := parseWordListRows(csvText)
	if err != nil {
		return nil, err
	}

	columnIndex := detectEnglishColumn(rows)
	columnLabel := string(rune('A' + columnIndex))
	words, skippedWords := extractStudyWords(rows, columnIndex)
	if len(words) == 0 {
		return nil, model.NewAppError("INVALID_INPUT",
			fmt.Sprintf("CSVから英単語を抽出できませんでした (判定した列: %s)。", columnLabel), "csv_text", model.ErrInvalidInput)
	}
	if len(words) > limit {
		words = words[:limit]
	}

	if _, err := s.deckRepo.FindByID(ctx, s.db, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
		}
		logger.Error("Error finding deck for word import", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語インポートに失敗しました。", "", model.ErrInternalServer)
	}

	// デッキ内に既にある単語 (target_word) は取り込まない
	existingCards, err := s.cardRepo.FindByScope(ctx, s.db, &deckID)
	if err != nil {
		logger.Error("Error loading existing cards for word import", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語インポートに失敗しました。", "", model.ErrInternalServer)
	}
	existingWords := make(map[string]bool, len(existingCards))
	for _, card := range existingCards {
		if card.TargetWord != nil {
			if key := normalizeStudyWord(*card.TargetWord); key != "" {
				existingWords[key] = true
			}
		}
	}

	result := &model.ImportWordsResponse{
		Skipped:        len(skippedWords),
		DetectedColumn: columnLabel,
		SkippedWords:   capSamples(skippedWords),
	}

	for _, word := range words {
		key := normalizeStudyWord(word)
		if existingWords[key] {
			result.Skipped++
			result.SkippedWords = appendSample(result.SkippedWords, word)
			continue
		}

		// 1語ずつベストエフォートで登録する。失敗しても残りの単語は続行。
		draft, err := s.wordHelper.BuildDraft(ctx, word)
		if err != nil {
			logger.Warn("Failed to build draft for imported word", "word", word, "error", err)
			result.Errors++
			result.ErrorWords = appendSample(result.ErrorWords, word)
			continue
		}
		card := cardFromDraft(deckID, draft)
		if err := s.cardRepo.Create(ctx, s.db, card); err != nil {
			logger.Warn("Failed to create card for imported word", "word", word, "error", err)
			result.Errors++
			result.ErrorWords = appendSample(result.ErrorWords, word)
			continue
		}

		existingWords[key] = true
		result.Imported++
		result.ImportedWords = appendSample(result.ImportedWords, word)
	}

	logger.Info("Word import completed",
		"deck_id", deckID.String(),
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", result.Errors,
		"column", columnLabel,
	)
	return result, nil
}

// parseWordListRows は列数の揃っていないCSVも行のスライスとして読み取ります
func parseWordListRows(csvText string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, model.NewAppError("INVALID_INPUT", "CSVを読み取れません。", "csv_text", model.ErrInvalidInput)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// detectEnglishColumn は英単語が最も多い列を推定します。
// 列ごとに「英単語セル数 * 10 - その他の非空セル数」で採点する。
func detectEnglishColumn(rows [][]string) int {
	maxColumns := 0
	for _, row := range rows {
		if len(row) > maxColumns {
			maxColumns = len(row)
		}
	}

	bestCol := 2 // 判定不能時はC列とみなす
	bestScore := -1
	for col := 0; col < maxColumns; col++ {
		englishCount := 0
		nonEmptyCount := 0
		for i, row := range rows {
			if col >= len(row) {
				continue
			}
			raw := strings.TrimSpace(row[col])
			if raw == "" {
				continue
			}
			if i == 0 && wordListHeaderCells[normalizeStudyWord(raw)] {
				continue
			}
			nonEmptyCount++
			if studyWordPattern.MatchString(normalizeStudyWord(raw)) {
				englishCount++
			}
		}

		score := -1
		if nonEmptyCount > 0 {
			score = englishCount*10 - (nonEmptyCount - englishCount)
		}
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
	}
	return bestCol
}

// extractStudyWords は指定列から英単語を順序を保って重複なしで取り出します。
// 2つ目の戻り値は英単語でない・ファイル内で重複しているためスキップした値。
func extractStudyWords(rows [][]string, columnIndex int) (words []string, skipped []string) {
	seen := make(map[string]bool)
	for i, row := range rows {
		raw := ""
		if columnIndex < len(row) {
			raw = strings.TrimSpace(row[columnIndex])
		}
		value := normalizeStudyWord(raw)
		if value == "" {
			continue
		}
		if i == 0 && wordListHeaderCells[value] {
			continue
		}
		if !studyWordPattern.MatchString(value) {
			skipped = append(skipped, raw)
			continue
		}
		if seen[value] {
			skipped = append(skipped, raw)
			continue
		}
		seen[value] = true
		words = append(words, value)
	}
	return words, skipped
}

// cardFromDraft は下書きをカードのレコードに変換します
func cardFromDraft(deckID uuid.UUID, draft *model.CardDraft) *model.Card {
	targetWord := draft.TargetWord
	tags := draft.Tags
	level := draft.Level
	card := &model.Card{
		CardID:     uuid.New(),
		DeckID:     deckID,
		TargetWord: &targetWord,
		Phonetic:   draft.Phonetic,
		AudioURL:   draft.AudioURL,
		FrontText:  draft.FrontText,
		BackText:   draft.BackText,
		Tags:       &tags,
		Level:      &level,
	}
	if draft.ImageURL != "" {
		imageURL := draft.ImageURL
		card.ImageURL = &imageURL
	}
	return card
}

const maxImportSamples = 10

func appendSample(samples []string, word string) []string {
	if len(samples) >= maxImportSamples {
		return samples
	}
	return append(samples, word)
}

func capSamples(samples []string) []string {
	if len(samples) > maxImportSamples {
		return samples[:maxImportSamples]
	}
	return samples
}

// parseCSVCards はCSVテキストをカードのスライスに変換します。
// 行番号付きのエラーを返し、部分的な結果は返しません。
func parseCSVCards(deckID uuid.UUID, csvText string) ([]*model.Card, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, model.NewAppError("INVALID_INPUT", "CSVのヘッダ行を読み取れません。", "csv_text", model.ErrInvalidInput)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if !csvColumns[key] {
			return nil, model.NewAppError("INVALID_INPUT",
				fmt.Sprintf("CSVのヘッダに不明な列があります: %s", name), "csv_text", model.ErrInvalidInput)
		}
		colIndex[key] = i
	}
	if _, ok := colIndex["front_text"]; !ok {
		return nil, model.NewAppError("INVALID_INPUT", "CSVのヘッダに front_text 列が必要です。", "csv_text", model.ErrInvalidInput)
	}
	if _, ok := colIndex["back_text"]; !ok {
		return nil, model.NewAppError("INVALID_INPUT", "CSVのヘッダに back_text 列が必要です。", "csv_text", model.ErrInvalidInput)
	}

	field := func(record []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	optional := func(record []string, name string) *string {
		v := field(record, name)
		if v == "" {
			return nil
		}
		return &v
	}

	var cards []*model.Card
	rowNum := 1 // ヘッダが1行目
	for {
		record, err := reader.Read()
		if err != nil {
			// io.EOF で正常終了、それ以外は行エラー
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, model.NewAppError("INVALID_INPUT",
				fmt.Sprintf("CSVの%d行目を読み取れません。", rowNum+1), "csv_text", model.ErrInvalidInput)
		}
		rowNum++

		frontText := field(record, "front_text")
		backText := field(record, "back_text")
		if frontText == "" {
			return nil, model.NewAppError("INVALID_INPUT",
				fmt.Sprintf("CSVの%d行目: front_text は必須です。", rowNum), "csv_text", model.ErrInvalidInput)
		}
		if backText == "" {
			return nil, model.NewAppError("INVALID_INPUT",
				fmt.Sprintf("CSVの%d行目: back_text は必須です。", rowNum), "csv_text", model.ErrInvalidInput)
		}

		var level *int
		if v := field(record, "level"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 10 {
				return nil, model.NewAppError("INVALID_INPUT",
					fmt.Sprintf("CSVの%d行目: level は1〜10の整数で指定してください。", rowNum), "csv_text", model.ErrInvalidInput)
			}
			level = &n
		}

		cards = append(cards, &model.Card{
			CardID:     uuid.New(),
			DeckID:     deckID,
			TargetWord: optional(record, "target_word"),
			Phonetic:   optional(record, "phonetic"),
			AudioURL:   optional(record, "audio_url"),
			FrontText:  frontText,
			BackText:   backText,
			ImageURL:   optional(record, "image_url"),
			Tags:       optional(record, "tags"),
			Level:      level,
		})
	}
	return cards, nil
}
