// internal/repository/review_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository は ReviewState の読み書きと ReviewLog の追記を提供します。
// ReviewLog は追記専用で、更新・削除のメソッドは意図的に存在しません。
type ReviewRepository interface {
	// FindStateForUpdate はトランザクション内で行ロックを取りつつ ReviewState を取得します
	FindStateForUpdate(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*model.ReviewState, error)
	UpsertState(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error
	CreateLog(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error
	// FindLogsByCardIDs は対象カードのログを評価日時降順で返します
	FindLogsByCardIDs(ctx context.Context, db *gorm.DB, cardIDs []uuid.UUID) ([]*model.ReviewLog, error)
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

func (r *gormReviewRepository) FindStateForUpdate(ctx context.Context, tx *gorm.DB, cardID uuid.UUID) (*model.ReviewState, error) {
	logger := middleware.GetLogger(ctx)
	var state model.ReviewState

	query := tx.WithContext(ctx)
	// 同一カードへの同時評価を直列化するため SELECT ... FOR UPDATE で行ロックを取る。
	// SQLite は FOR UPDATE 非対応のため Postgres のときだけ付与する (SQLiteの書き込みはDB単位で直列)。
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	result := query.Where("card_id = ?", cardID).First(&state)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding review state in DB",
			"error", result.Error,
			"card_id", cardID.String(),
		)
		return nil, fmt.Errorf("gormReviewRepository.FindStateForUpdate: %w", result.Error)
	}
	return &state, nil
}

func (r *gormReviewRepository) UpsertState(ctx context.Context, tx *gorm.DB, state *model.ReviewState) error {
	logger := middleware.GetLogger(ctx)
	// card_id をキーに INSERT ... ON CONFLICT DO UPDATE で作成または上書き
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ease", "interval_days", "due_date", "reps", "lapses", "last_reviewed_at", "updated_at",
		}),
	}).Create(state)
	if result.Error != nil {
		logger.Error("Error upserting review state in DB",
			"error", result.Error,
			"card_id", state.CardID.String(),
		)
		return fmt.Errorf("gormReviewRepository.UpsertState: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) CreateLog(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(log)
	if result.Error != nil {
		logger.Error("Error creating review log in DB",
			"error", result.Error,
			"card_id", log.CardID.String(),
		)
		return fmt.Errorf("gormReviewRepository.CreateLog: %w", result.Error)
	}
	return nil
}

func (r *gormReviewRepository) FindLogsByCardIDs(ctx context.Context, db *gorm.DB, cardIDs []uuid.UUID) ([]*model.ReviewLog, error) {
	logger := middleware.GetLogger(ctx)
	if len(cardIDs) == 0 {
		return nil, nil
	}
	var logs []*model.ReviewLog
	// 同時刻のログは created_at 降順で安定させる (1回のフィルタ呼び出し内で一貫すればよい)
	result := db.WithContext(ctx).
		Where("card_id IN ?", cardIDs).
		Order("reviewed_at DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		logger.Error("Error finding review logs in DB", "error", result.Error)
		return nil, fmt.Errorf("gormReviewRepository.FindLogsByCardIDs: %w", result.Error)
	}
	return logs, nil
}
