// internal/service/review_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/repository"
	"go_flashdeck_keep/internal/srs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// テストごとに独立した名前付きインメモリDBを使う
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Deck{}, &model.Card{}, &model.ReviewState{}, &model.ReviewLog{})
	require.NoError(t, err)
	return db
}

func newTestReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(db, repository.NewGormCardRepository(), repository.NewGormReviewRepository())
}

func createTestDeck(t *testing.T, db *gorm.DB, name string) *model.Deck {
	t.Helper()
	deck := &model.Deck{DeckID: uuid.New(), Name: name}
	require.NoError(t, db.Create(deck).Error)
	return deck
}

func createTestCard(t *testing.T, db *gorm.DB, deckID uuid.UUID, front string, createdAt time.Time) *model.Card {
	t.Helper()
	card := &model.Card{
		CardID:    uuid.New(),
		DeckID:    deckID,
		FrontText: front,
		BackText:  "back of " + front,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(card).Error)
	return card
}

func seedReviewState(t *testing.T, db *gorm.DB, cardID uuid.UUID, ease float64, intervalDays, reps, lapses int, dueDate time.Time) {
	t.Helper()
	state := &model.ReviewState{
		CardID:       cardID,
		Ease:         ease,
		IntervalDays: intervalDays,
		DueDate:      dueDate,
		Reps:         reps,
		Lapses:       lapses,
	}
	require.NoError(t, db.Create(state).Error)
}

// --- Test ApplyRating ---
func Test_reviewService_ApplyRating(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	today := srs.StartOfLocalDay(now)

	t.Run("正常系: 未レビューカードにGood → 1日後", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "apple", now.Add(-time.Hour))

		state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingGood, now)
		require.NoError(t, err)

		assert.Equal(t, 1, state.IntervalDays)
		assert.Equal(t, 1, state.Reps)
		assert.Equal(t, 0, state.Lapses)
		assert.InDelta(t, 2.5, state.Ease, 0.0001)
		assert.True(t, today.AddDate(0, 0, 1).Equal(state.DueDate),
			"due date should be start of tomorrow, got %v", state.DueDate)

		// ReviewState が永続化されている
		var saved model.ReviewState
		require.NoError(t, db.Where("card_id = ?", card.CardID).First(&saved).Error)
		assert.Equal(t, 1, saved.IntervalDays)
		require.NotNil(t, saved.LastReviewedAt)

		// ReviewLog が1件対になっている
		var logs []model.ReviewLog
		require.NoError(t, db.Where("card_id = ?", card.CardID).Find(&logs).Error)
		require.Len(t, logs, 1)
		assert.Equal(t, "Good", logs[0].Rating)
		assert.Equal(t, 0, logs[0].PrevIntervalDays)
		assert.Equal(t, 1, logs[0].NewIntervalDays)
		assert.Equal(t, 0, logs[0].PrevReps)
		assert.Equal(t, 1, logs[0].NewReps)
	})

	t.Run("正常系: Goodの連続で 1→3→7→30→30 と進む", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "banana", now.Add(-time.Hour))

		expected := []int{1, 3, 7, 30, 30}
		for i, want := range expected {
			state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingGood, now)
			require.NoError(t, err)
			assert.Equal(t, want, state.IntervalDays, "step %d", i+1)
			assert.Equal(t, i+1, state.Reps)
			assert.InDelta(t, 2.5, state.Ease, 0.0001, "Good must not change ease")
		}
	})

	t.Run("正常系: Againで間隔リセット・lapses加算", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "cherry", now.Add(-time.Hour))
		seedReviewState(t, db, card.CardID, 2.5, 7, 3, 0, today)

		state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingAgain, now)
		require.NoError(t, err)

		assert.InDelta(t, 2.3, state.Ease, 0.0001)
		assert.Equal(t, 0, state.IntervalDays)
		assert.Equal(t, 0, state.Reps)
		assert.Equal(t, 1, state.Lapses)
		assert.True(t, today.Equal(state.DueDate), "Again must keep the card due today")
	})

	t.Run("正常系: 未レビューカードにEasy → 7日後", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "date", now.Add(-time.Hour))

		state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingEasy, now)
		require.NoError(t, err)

		assert.Equal(t, 7, state.IntervalDays)
		assert.InDelta(t, 2.65, state.Ease, 0.0001)
		assert.Equal(t, 1, state.Reps)
	})

	t.Run("正常系: Hardは段を進めずeaseを下げる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "elder", now.Add(-time.Hour))
		seedReviewState(t, db, card.CardID, 2.5, 3, 1, 0, today)

		state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingHard, now)
		require.NoError(t, err)

		assert.Equal(t, 3, state.IntervalDays)
		assert.InDelta(t, 2.45, state.Ease, 0.0001)
		assert.Equal(t, 2, state.Reps)
		assert.True(t, today.AddDate(0, 0, 3).Equal(state.DueDate))
	})

	t.Run("正常系: easeは1.3を下回らない", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "fig", now.Add(-time.Hour))
		seedReviewState(t, db, card.CardID, 1.35, 7, 5, 2, today)

		state, err := svc.ApplyRating(ctx, card.CardID, srs.RatingAgain, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.3, state.Ease, 0.0001)

		state, err = svc.ApplyRating(ctx, card.CardID, srs.RatingHard, now)
		require.NoError(t, err)
		assert.InDelta(t, 1.3, state.Ease, 0.0001)
	})

	t.Run("異常系: 存在しないカード", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)

		_, err := svc.ApplyRating(ctx, uuid.New(), srs.RatingGood, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))

		// 何も書き込まれていない
		var logCount int64
		require.NoError(t, db.Model(&model.ReviewLog{}).Count(&logCount).Error)
		assert.Zero(t, logCount)
	})
}

// --- Test BuildTodayQueue ---
func Test_reviewService_BuildTodayQueue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	today := srs.StartOfLocalDay(now)
	base := now.Add(-24 * time.Hour)

	t.Run("正常系: 期日到来が先、新規が後、新規はnewLimitまで", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")

		// 期日: 昨日期日・今日期日・明日期日(含まれない)
		overdue := createTestCard(t, db, deck.DeckID, "overdue", base)
		seedReviewState(t, db, overdue.CardID, 2.5, 1, 1, 0, today.AddDate(0, 0, -1))
		dueToday := createTestCard(t, db, deck.DeckID, "due-today", base.Add(time.Minute))
		seedReviewState(t, db, dueToday.CardID, 2.5, 3, 1, 0, today)
		future := createTestCard(t, db, deck.DeckID, "future", base.Add(2*time.Minute))
		seedReviewState(t, db, future.CardID, 2.5, 7, 1, 0, today.AddDate(0, 0, 1))

		// 新規3枚 (作成順)、newLimit=2 で先頭2枚だけ
		new1 := createTestCard(t, db, deck.DeckID, "new1", base.Add(3*time.Minute))
		new2 := createTestCard(t, db, deck.DeckID, "new2", base.Add(4*time.Minute))
		createTestCard(t, db, deck.DeckID, "new3", base.Add(5*time.Minute))

		deckID := deck.DeckID
		queue, err := svc.BuildTodayQueue(ctx, &deckID, now, 2)
		require.NoError(t, err)
		require.Len(t, queue, 4)

		assert.Equal(t, overdue.CardID, queue[0].Card.CardID)
		assert.Equal(t, dueToday.CardID, queue[1].Card.CardID)
		assert.False(t, queue[0].IsNew)
		assert.False(t, queue[1].IsNew)
		require.NotNil(t, queue[0].ReviewState)

		assert.Equal(t, new1.CardID, queue[2].Card.CardID)
		assert.Equal(t, new2.CardID, queue[3].Card.CardID)
		assert.True(t, queue[2].IsNew)
		assert.True(t, queue[3].IsNew)
		assert.Nil(t, queue[2].ReviewState)
	})

	t.Run("正常系: グローバルスコープでは全デッキを横断する", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck1 := createTestDeck(t, db, "deck1")
		deck2 := createTestDeck(t, db, "deck2")

		c1 := createTestCard(t, db, deck1.DeckID, "c1", base)
		seedReviewState(t, db, c1.CardID, 2.5, 1, 1, 0, today)
		createTestCard(t, db, deck2.DeckID, "c2", base.Add(time.Minute))

		queue, err := svc.BuildTodayQueue(ctx, nil, now, 10)
		require.NoError(t, err)
		assert.Len(t, queue, 2)
	})

	t.Run("正常系: Again直後のカードは今日のキューに残る", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")
		card := createTestCard(t, db, deck.DeckID, "tricky", base)
		seedReviewState(t, db, card.CardID, 2.5, 7, 3, 0, today)

		_, err := svc.ApplyRating(ctx, card.CardID, srs.RatingAgain, now)
		require.NoError(t, err)

		deckID := deck.DeckID
		queue, err := svc.BuildTodayQueue(ctx, &deckID, now, 10)
		require.NoError(t, err)
		require.Len(t, queue, 1)
		assert.Equal(t, card.CardID, queue[0].Card.CardID)
	})
}

// --- Test BuildFullQueue ---
func Test_reviewService_BuildFullQueue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	today := srs.StartOfLocalDay(now)
	base := now.Add(-24 * time.Hour)

	t.Run("正常系: 全カードが作成順にちょうど1回ずつ現れる", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")

		reviewed := createTestCard(t, db, deck.DeckID, "reviewed", base)
		seedReviewState(t, db, reviewed.CardID, 2.5, 30, 4, 0, today.AddDate(0, 0, 20))
		fresh := createTestCard(t, db, deck.DeckID, "fresh", base.Add(time.Minute))

		deckID := deck.DeckID
		queue, err := svc.BuildFullQueue(ctx, &deckID)
		require.NoError(t, err)
		require.Len(t, queue, 2)

		assert.Equal(t, reviewed.CardID, queue[0].Card.CardID)
		assert.False(t, queue[0].IsNew)
		require.NotNil(t, queue[0].ReviewState)
		assert.Equal(t, 30, queue[0].ReviewState.IntervalDays)

		assert.Equal(t, fresh.CardID, queue[1].Card.CardID)
		assert.True(t, queue[1].IsNew)
		assert.Nil(t, queue[1].ReviewState)
	})
}

// --- Test FilterByLatestRating ---
func Test_reviewService_FilterByLatestRating(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	base := now.Add(-24 * time.Hour)

	t.Run("正常系: allフィルタはストアに触れずそのまま返す", func(t *testing.T) {
		// db が nil でもストアアクセスが発生しないことを保証する
		svc := newTestReviewService(nil)
		queue := []*model.QueueItem{
			{Card: &model.Card{CardID: uuid.New()}, IsNew: true},
		}

		got, err := svc.FilterByLatestRating(ctx, queue, srs.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, queue, got)
	})

	t.Run("正常系: 空キューもストアに触れない", func(t *testing.T) {
		svc := newTestReviewService(nil)

		got, err := svc.FilterByLatestRating(ctx, nil, srs.FilterDifficult)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("正常系: 直近評価で判定し、未評価カードは除外される", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")

		// hard: Good → Hard (直近は Hard)
		hardCard := createTestCard(t, db, deck.DeckID, "hard", base)
		_, err := svc.ApplyRating(ctx, hardCard.CardID, srs.RatingGood, now.Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = svc.ApplyRating(ctx, hardCard.CardID, srs.RatingHard, now.Add(-time.Hour))
		require.NoError(t, err)

		// good: Again → Good (直近は Good)
		goodCard := createTestCard(t, db, deck.DeckID, "good", base.Add(time.Minute))
		_, err = svc.ApplyRating(ctx, goodCard.CardID, srs.RatingAgain, now.Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = svc.ApplyRating(ctx, goodCard.CardID, srs.RatingGood, now.Add(-time.Hour))
		require.NoError(t, err)

		// 未評価
		freshCard := createTestCard(t, db, deck.DeckID, "fresh", base.Add(2*time.Minute))

		queue := []*model.QueueItem{
			{Card: hardCard},
			{Card: goodCard},
			{Card: freshCard, IsNew: true},
		}

		// difficult = 直近が Again または Hard
		got, err := svc.FilterByLatestRating(ctx, queue, srs.FilterDifficult)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hardCard.CardID, got[0].Card.CardID)

		// learned = 直近が Good または Easy
		got, err = svc.FilterByLatestRating(ctx, queue, srs.FilterLearned)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, goodCard.CardID, got[0].Card.CardID)

		// 単一評価の完全一致
		got, err = svc.FilterByLatestRating(ctx, queue, srs.FilterHard)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hardCard.CardID, got[0].Card.CardID)

		got, err = svc.FilterByLatestRating(ctx, queue, srs.FilterAgain)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// --- Test CountToday ---
func Test_reviewService_CountToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	today := srs.StartOfLocalDay(now)
	base := now.Add(-24 * time.Hour)

	t.Run("正常系: 期日件数と新規件数を返す", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestReviewService(db)
		deck := createTestDeck(t, db, "deck1")

		due := createTestCard(t, db, deck.DeckID, "due", base)
		seedReviewState(t, db, due.CardID, 2.5, 1, 1, 0, today)
		future := createTestCard(t, db, deck.DeckID, "future", base.Add(time.Minute))
		seedReviewState(t, db, future.CardID, 2.5, 7, 1, 0, today.AddDate(0, 0, 5))
		createTestCard(t, db, deck.DeckID, "new1", base.Add(2*time.Minute))
		createTestCard(t, db, deck.DeckID, "new2", base.Add(3*time.Minute))

		deckID := deck.DeckID
		counts, err := svc.CountToday(ctx, &deckID, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts.Due)
		assert.Equal(t, int64(2), counts.New)
	})
}
