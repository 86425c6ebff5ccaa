// internal/repository/card_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardRepository はカードの問い合わせを提供します。
// deckID が nil のメソッドは全デッキ横断 (グローバルスコープ) で動作します。
type CardRepository interface {
	Create(ctx context.Context, tx *gorm.DB, card *model.Card) error
	CreateBatch(ctx context.Context, tx *gorm.DB, cards []*model.Card) error
	FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error)
	// FindByScope はスコープ内の全カードを作成日時昇順で返す (ReviewStateをPreload)
	FindByScope(ctx context.Context, db *gorm.DB, deckID *uuid.UUID) ([]*model.Card, error)
	// FindDue は期日が today 以前のカードを期日昇順・作成日時昇順で返す
	FindDue(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, today time.Time) ([]*model.Card, error)
	// FindNew は ReviewState を持たないカードを作成日時昇順で最大 limit 件返す
	FindNew(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, limit int) ([]*model.Card, error)
	CountDue(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, today time.Time) (int64, error)
	CountNew(ctx context.Context, db *gorm.DB, deckID *uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error
	DeleteByDeck(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error
}

type gormCardRepository struct{}

func NewGormCardRepository() CardRepository {
	return &gormCardRepository{}
}

func (r *gormCardRepository) Create(ctx context.Context, tx *gorm.DB, card *model.Card) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(card)
	if result.Error != nil {
		logger.Error("Error creating card in DB",
			"error", result.Error,
			"deck_id", card.DeckID.String(),
		)
		return fmt.Errorf("gormCardRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) CreateBatch(ctx context.Context, tx *gorm.DB, cards []*model.Card) error {
	logger := middleware.GetLogger(ctx)
	if len(cards) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(&cards)
	if result.Error != nil {
		logger.Error("Error creating cards in DB",
			"error", result.Error,
			"count", len(cards),
		)
		return fmt.Errorf("gormCardRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormCardRepository) FindByID(ctx context.Context, db *gorm.DB, cardID uuid.UUID) (*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var card model.Card
	result := db.WithContext(ctx).Preload("ReviewState").Where("card_id = ?", cardID).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding card by ID in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormCardRepository.FindByID: %w", result.Error)
	}
	return &card, nil
}

func (r *gormCardRepository) FindByScope(ctx context.Context, db *gorm.DB, deckID *uuid.UUID) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	query := db.WithContext(ctx).Preload("ReviewState").Order("cards.created_at ASC")
	if deckID != nil {
		query = query.Where("cards.deck_id = ?", *deckID)
	}
	result := query.Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding cards by scope in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCardRepository.FindByScope: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) FindDue(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, today time.Time) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	// 期日昇順、同日分は作成日時昇順で並びを確定させる
	query := db.WithContext(ctx).
		Preload("ReviewState").
		Joins("JOIN review_states ON review_states.card_id = cards.card_id").
		Where("review_states.due_date <= ?", today).
		Order("review_states.due_date ASC, cards.created_at ASC")
	if deckID != nil {
		query = query.Where("cards.deck_id = ?", *deckID)
	}
	result := query.Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding due cards in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCardRepository.FindDue: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) FindNew(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, limit int) ([]*model.Card, error) {
	logger := middleware.GetLogger(ctx)
	var cards []*model.Card
	// 先に登録された新規カードから導入する (FIFO)
	query := db.WithContext(ctx).
		Joins("LEFT JOIN review_states ON review_states.card_id = cards.card_id").
		Where("review_states.card_id IS NULL").
		Order("cards.created_at ASC").
		Limit(limit)
	if deckID != nil {
		query = query.Where("cards.deck_id = ?", *deckID)
	}
	result := query.Find(&cards)
	if result.Error != nil {
		logger.Error("Error finding new cards in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCardRepository.FindNew: %w", result.Error)
	}
	return cards, nil
}

func (r *gormCardRepository) CountDue(ctx context.Context, db *gorm.DB, deckID *uuid.UUID, today time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Card{}).
		Joins("JOIN review_states ON review_states.card_id = cards.card_id").
		Where("review_states.due_date <= ?", today)
	if deckID != nil {
		query = query.Where("cards.deck_id = ?", *deckID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error counting due cards in DB", "error", result.Error)
		return 0, fmt.Errorf("gormCardRepository.CountDue: %w", result.Error)
	}
	return count, nil
}

func (r *gormCardRepository) CountNew(ctx context.Context, db *gorm.DB, deckID *uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Card{}).
		Joins("LEFT JOIN review_states ON review_states.card_id = cards.card_id").
		Where("review_states.card_id IS NULL")
	if deckID != nil {
		query = query.Where("cards.deck_id = ?", *deckID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error counting new cards in DB", "error", result.Error)
		return 0, fmt.Errorf("gormCardRepository.CountNew: %w", result.Error)
	}
	return count, nil
}

func (r *gormCardRepository) Update(ctx context.Context, tx *gorm.DB, cardID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Card{}).Where("card_id = ?", cardID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating card in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) Delete(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("card_id = ?", cardID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting card in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormCardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCardRepository) DeleteByDeck(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// デッキ削除に追従してカードも論理削除する (0件でもエラーにしない)
	result := tx.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&model.Card{})
	if result.Error != nil {
		logger.Error("Error deleting cards by deck in DB",
			"error", result.Error,
			"deck_id", deckID.String(),
		)
		return fmt.Errorf("gormCardRepository.DeleteByDeck: %w", result.Error)
	}
	return nil
}
