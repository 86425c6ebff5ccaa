// internal/service/review_service.go
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

// ReviewService は復習キューの組み立てと評価の適用を提供します。
// deckID が nil の操作は全デッキ横断 (グローバルスコープ) で動作します。
type ReviewService interface {
	BuildTodayQueue(ctx context.Context, deckID *uuid.UUID, now time.Time, newLimit int) ([]*model.QueueItem, error)
	BuildFullQueue(ctx context.Context, deckID *uuid.UUID) ([]*model.QueueItem, error)
	FilterByLatestRating(ctx context.Context, queue []*model.QueueItem, filter srs.RatingFilter) ([]*model.QueueItem, error)
	ApplyRating(ctx context.Context, cardID uuid.UUID, rating srs.Rating, now time.Time) (*model.ReviewState, error)
	CountToday(ctx context.Context, deckID *uuid.UUID, now time.Time) (*model.ReviewCounts, error)
}

type reviewService struct {
	db         *gorm.DB
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
}

func NewReviewService(db *gorm.DB, cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{
		db:         db,
		cardRepo:   cardRepo,
		reviewRepo: reviewRepo,
	}
}

// BuildTodayQueue は「今日のキュー」を組み立てます。
// 期日到来カード (期日昇順・作成日時昇順) が先、続いて新規カード (作成日時昇順、最大 newLimit 件)。
func (s *reviewService) BuildTodayQueue(ctx context.Context, deckID *uuid.UUID, now time.Time, newLimit int) ([]*model.QueueItem, error) {
	logger := middleware.GetLogger(ctx)
	today := srs.StartOfLocalDay(now)

	dueCards, err := s.cardRepo.FindDue(ctx, s.db, deckID, today)
	if err != nil {
		logger.Error("Failed to find due cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習キューの取得に失敗しました。", "", model.ErrInternalServer)
	}

	newCards, err := s.cardRepo.FindNew(ctx, s.db, deckID, newLimit)
	if err != nil {
		logger.Error("Failed to find new cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習キューの取得に失敗しました。", "", model.ErrInternalServer)
	}

	items := make([]*model.QueueItem, 0, len(dueCards)+len(newCards))
	for _, card := range dueCards {
		items = append(items, &model.QueueItem{
			Card:        card,
			ReviewState: card.ReviewState,
			IsNew:       false,
		})
	}
	for _, card := range newCards {
		items = append(items, &model.QueueItem{
			Card:        card,
			ReviewState: nil,
			IsNew:       true,
		})
	}

	logger.Info("Today queue built",
		"due_count", len(dueCards),
		"new_count", len(newCards),
	)
	return items, nil
}

// BuildFullQueue はスコープ内の全カードを作成日時昇順で返します。
// 件数制限はなく、各カードはちょうど1回現れます。
func (s *reviewService) BuildFullQueue(ctx context.Context, deckID *uuid.UUID) ([]*model.QueueItem, error) {
	logger := middleware.GetLogger(ctx)

	cards, err := s.cardRepo.FindByScope(ctx, s.db, deckID)
	if err != nil {
		logger.Error("Failed to find cards for full queue", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", model.ErrInternalServer)
	}

	items := make([]*model.QueueItem, 0, len(cards))
	for _, card := range cards {
		items = append(items, &model.QueueItem{
			Card:        card,
			ReviewState: card.ReviewState,
			IsNew:       card.ReviewState == nil,
		})
	}
	return items, nil
}

// FilterByLatestRating は組み立て済みキューを「カードごとの直近評価」で絞り込みます。
// all または空キューではストアに一切アクセスせず、キューをそのまま返します。
func (s *reviewService) FilterByLatestRating(ctx context.Context, queue []*model.QueueItem, filter srs.RatingFilter) ([]*model.QueueItem, error) {
	if filter == srs.FilterAll || len(queue) == 0 {
		return queue, nil
	}
	logger := middleware.GetLogger(ctx)

	cardIDs := make([]uuid.UUID, 0, len(queue))
	for _, item := range queue {
		cardIDs = append(cardIDs, item.Card.CardID)
	}

	logs, err := s.reviewRepo.FindLogsByCardIDs(ctx, s.db, cardIDs)
	if err != nil {
		logger.Error("Failed to find review logs for filter", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "評価履歴の取得に失敗しました。", "", model.ErrInternalServer)
	}

	// 降順で最初に現れたログがそのカードの直近評価 (first occurrence wins)
	latestByCard := make(map[uuid.UUID]srs.Rating, len(queue))
	for _, lg := range logs {
		if _, ok := latestByCard[lg.CardID]; !ok {
			latestByCard[lg.CardID] = srs.Rating(lg.Rating)
		}
	}

	filtered := make([]*model.QueueItem, 0, len(queue))
	for _, item := range queue {
		latest, ok := latestByCard[item.Card.CardID]
		if !ok {
			// 一度も評価されていないカードは all 以外のフィルタに合致しない
			continue
		}
		if filter.Matches(latest) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// ApplyRating は1枚のカードに評価を適用します。
// 状態の読み取り・ポリシー適用・ReviewState更新・ReviewLog追記を1トランザクションで行い、
// 途中で失敗した場合は何も書き込まれません。失敗後の自動リトライは安全でないため行いません。
func (s *reviewService) ApplyRating(ctx context.Context, cardID uuid.UUID, rating srs.Rating, now time.Time) (*model.ReviewState, error) {
	logger := middleware.GetLogger(ctx).With("card_id", cardID.String(), "rating", string(rating))

	var saved *model.ReviewState

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. カードの存在確認
		if _, err := s.cardRepo.FindByID(ctx, tx, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)
			}
			logger.Error("Error finding card in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの取得に失敗しました。", "", model.ErrInternalServer)
		}

		// 2. 現在状態のスナップショット (未レビューなら明示的な既定値)
		current := srs.DefaultSnapshot()
		state, err := s.reviewRepo.FindStateForUpdate(ctx, tx, cardID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding review state in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習状態の取得に失敗しました。", "", model.ErrInternalServer)
		}
		if state != nil {
			current = srs.Snapshot{
				Ease:         state.Ease,
				IntervalDays: state.IntervalDays,
				Reps:         state.Reps,
				Lapses:       state.Lapses,
			}
		}

		// 3. ポリシー適用
		next := srs.Next(current, rating, now)

		// 4. ReviewState を作成または上書き
		reviewedAt := now
		newState := &model.ReviewState{
			CardID:         cardID,
			Ease:           next.Ease,
			IntervalDays:   next.IntervalDays,
			DueDate:        next.DueDate,
			Reps:           next.Reps,
			Lapses:         next.Lapses,
			LastReviewedAt: &reviewedAt,
		}
		if err := s.reviewRepo.UpsertState(ctx, tx, newState); err != nil {
			logger.Error("Error upserting review state in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習状態の保存に失敗しました。", "", model.ErrInternalServer)
		}

		// 5. 監査ログを追記 (状態更新と同一トランザクションで必ず対になる)
		reviewLog := &model.ReviewLog{
			LogID:            uuid.New(),
			CardID:           cardID,
			ReviewedAt:       now,
			Rating:           string(rating),
			PrevEase:         current.Ease,
			NewEase:          next.Ease,
			PrevIntervalDays: current.IntervalDays,
			NewIntervalDays:  next.IntervalDays,
			PrevReps:         current.Reps,
			NewReps:          next.Reps,
			DueDateAfter:     next.DueDate,
		}
		if err := s.reviewRepo.CreateLog(ctx, tx, reviewLog); err != nil {
			logger.Error("Error creating review log in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "評価履歴の保存に失敗しました。", "", model.ErrInternalServer)
		}

		saved = newState
		return nil // コミット
	})

	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		logger.Error("Transaction failed for ApplyRating", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "評価の保存に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Rating applied",
		"interval_days", saved.IntervalDays,
		"reps", saved.Reps,
		"lapses", saved.Lapses,
		"due_date", saved.DueDate,
	)
	return saved, nil
}

// CountToday は本日分の期日到来件数と新規件数を返します (UI表示用)
func (s *reviewService) CountToday(ctx context.Context, deckID *uuid.UUID, now time.Time) (*model.ReviewCounts, error) {
	logger := middleware.GetLogger(ctx)
	today := srs.StartOfLocalDay(now)

	due, err := s.cardRepo.CountDue(ctx, s.db, deckID, today)
	if err != nil {
		logger.Error("Failed to count due cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "件数の取得に失敗しました。", "", model.ErrInternalServer)
	}
	newCount, err := s.cardRepo.CountNew(ctx, s.db, deckID)
	if err != nil {
		logger.Error("Failed to count new cards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "件数の取得に失敗しました。", "", model.ErrInternalServer)
	}

	return &model.ReviewCounts{Due: due, New: newCount}, nil
}
