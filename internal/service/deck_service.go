// internal/service/deck_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/repository"
	"go_flashdeck_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeckService はデッキのCRUDを提供します
type DeckService interface {
	CreateDeck(ctx context.Context, req *model.PostDeckRequest) (*model.Deck, error)
	GetDeck(ctx context.Context, deckID uuid.UUID) (*model.Deck, error)
	ListDecks(ctx context.Context, now time.Time) ([]*model.DeckSummary, error)
	UpdateDeck(ctx context.Context, deckID uuid.UUID, req *model.PutDeckRequest) (*model.Deck, error)
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error
}

type deckService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
	}
}

func (s *deckService) CreateDeck(ctx context.Context, req *model.PostDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)

	deck := &model.Deck{
		DeckID: uuid.New(),
		Name:   req.Name,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同名デッキの重複チェック
		exists, err := s.deckRepo.CheckNameExists(ctx, tx, req.Name, nil)
		if err != nil {
			logger.Error("Error checking deck name in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの作成に失敗しました。", "", model.ErrInternalServer)
		}
		if exists {
			return model.NewAppError("CONFLICT", "同じ名前のデッキが既に存在します。", "name", model.ErrConflict)
		}

		if err := s.deckRepo.Create(ctx, tx, deck); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "同じ名前のデッキが既に存在します。", "name", model.ErrConflict)
			}
			logger.Error("Error creating deck in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの作成に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deck created", "deck_id", deck.DeckID.String(), "name", deck.Name)
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, deckID uuid.UUID) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)

	deck, err := s.deckRepo.FindByID(ctx, s.db, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
		}
		logger.Error("Error finding deck", "error", err, "deck_id", deckID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", model.ErrInternalServer)
	}
	return deck, nil
}

// ListDecks は全デッキを作成日時昇順で、本日分の件数付きで返します
func (s *deckService) ListDecks(ctx context.Context, now time.Time) ([]*model.DeckSummary, error) {
	logger := middleware.GetLogger(ctx)

	decks, err := s.deckRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Error listing decks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", model.ErrInternalServer)
	}

	today := srs.StartOfLocalDay(now)
	summaries := make([]*model.DeckSummary, 0, len(decks))
	for _, deck := range decks {
		deckID := deck.DeckID
		due, err := s.cardRepo.CountDue(ctx, s.db, &deckID, today)
		if err != nil {
			logger.Error("Error counting due cards for deck", "error", err, "deck_id", deckID.String())
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", model.ErrInternalServer)
		}
		newCount, err := s.cardRepo.CountNew(ctx, s.db, &deckID)
		if err != nil {
			logger.Error("Error counting new cards for deck", "error", err, "deck_id", deckID.String())
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", model.ErrInternalServer)
		}
		summaries = append(summaries, &model.DeckSummary{
			Deck:     deck,
			DueCount: due,
			NewCount: newCount,
		})
	}
	return summaries, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, deckID uuid.UUID, req *model.PutDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.deckRepo.CheckNameExists(ctx, tx, req.Name, &deckID)
		if err != nil {
			logger.Error("Error checking deck name in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの更新に失敗しました。", "", model.ErrInternalServer)
		}
		if exists {
			return model.NewAppError("CONFLICT", "同じ名前のデッキが既に存在します。", "name", model.ErrConflict)
		}

		updates := map[string]interface{}{"name": req.Name}
		if err := s.deckRepo.Update(ctx, tx, deckID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
			}
			logger.Error("Error updating deck in transaction", "error", err, "deck_id", deckID.String())
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの更新に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.FindByID(ctx, s.db, deckID)
	if err != nil {
		logger.Error("Error reloading deck after update", "error", err, "deck_id", deckID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Deck updated", "deck_id", deckID.String(), "name", deck.Name)
	return deck, nil
}

// DeleteDeck はデッキとその配下のカードを論理削除します
func (s *deckService) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deckRepo.Delete(ctx, tx, deckID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)
			}
			logger.Error("Error deleting deck in transaction", "error", err, "deck_id", deckID.String())
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", model.ErrInternalServer)
		}
		if err := s.cardRepo.DeleteByDeck(ctx, tx, deckID); err != nil {
			logger.Error("Error deleting cards of deck in transaction", "error", err, "deck_id", deckID.String())
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", model.ErrInternalServer)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Deck deleted", "deck_id", deckID.String())
	return nil
}
