// internal/repository/deck_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type DeckRepository interface {
	Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error
	FindByID(ctx context.Context, db *gorm.DB, deckID uuid.UUID) (*model.Deck, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Deck, error)
	Update(ctx context.Context, tx *gorm.DB, deckID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error
	CheckNameExists(ctx context.Context, db *gorm.DB, name string, excludeDeckID *uuid.UUID) (bool, error)
}

type gormDeckRepository struct{}

func NewGormDeckRepository() DeckRepository {
	return &gormDeckRepository{}
}

func (r *gormDeckRepository) Create(ctx context.Context, tx *gorm.DB, deck *model.Deck) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(deck)
	if result.Error != nil {
		// Postgresの一意制約違反 (23505) は重複エラーとして返す
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			return model.ErrConflict
		}
		logger.Error("Error creating deck in DB",
			"error", result.Error,
			"name", deck.Name,
		)
		return fmt.Errorf("gormDeckRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormDeckRepository) FindByID(ctx context.Context, db *gorm.DB, deckID uuid.UUID) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var deck model.Deck
	result := db.WithContext(ctx).Where("deck_id = ?", deckID).First(&deck)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding deck by ID in DB",
			"error", result.Error,
			"deck_id", deckID.String(),
		)
		return nil, fmt.Errorf("gormDeckRepository.FindByID: %w", result.Error)
	}
	return &deck, nil
}

func (r *gormDeckRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Deck, error) {
	logger := middleware.GetLogger(ctx)
	var decks []*model.Deck
	result := db.WithContext(ctx).Order("created_at ASC").Find(&decks)
	if result.Error != nil {
		logger.Error("Error finding decks in DB", "error", result.Error)
		return nil, fmt.Errorf("gormDeckRepository.FindAll: %w", result.Error)
	}
	return decks, nil
}

func (r *gormDeckRepository) Update(ctx context.Context, tx *gorm.DB, deckID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Deck{}).Where("deck_id = ?", deckID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating deck in DB",
			"error", result.Error,
			"deck_id", deckID.String(),
		)
		return fmt.Errorf("gormDeckRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormDeckRepository) Delete(ctx context.Context, tx *gorm.DB, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&model.Deck{})
	if result.Error != nil {
		logger.Error("Error deleting deck in DB",
			"error", result.Error,
			"deck_id", deckID.String(),
		)
		return fmt.Errorf("gormDeckRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormDeckRepository) CheckNameExists(ctx context.Context, db *gorm.DB, name string, excludeDeckID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Deck{}).Where("name = ?", name)
	if excludeDeckID != nil {
		query = query.Where("deck_id != ?", *excludeDeckID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking deck name existence in DB",
			"error", result.Error,
			"name", name,
		)
		return false, fmt.Errorf("gormDeckRepository.CheckNameExists: %w", result.Error)
	}
	return count > 0, nil
}
