// internal/handlers/review_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_flashdeck_keep/internal/handlers"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service/mocks"
	"go_flashdeck_keep/internal/srs"
)

func setupReviewRouter(t *testing.T) (*mocks.MockReviewService, *chi.Mux) {
	t.Helper()
	mockReviewService := mocks.NewMockReviewService(t)
	reviewHandler := handlers.NewReviewHandler(mockReviewService, discardLogger())

	router := chi.NewRouter()
	router.Get("/api/v1/review-queue", reviewHandler.GetTodayQueue)
	router.Get("/api/v1/decks/{deck_id}/review-queue", reviewHandler.GetTodayQueue)
	router.Get("/api/v1/cards", reviewHandler.GetFullQueue)
	router.Get("/api/v1/review-counts", reviewHandler.GetCounts)
	router.Get("/api/v1/decks/{deck_id}/review-counts", reviewHandler.GetCounts)
	router.Post("/api/v1/reviews", reviewHandler.PostReview)
	return mockReviewService, router
}

func TestReviewHandler_PostReview(t *testing.T) {
	mockReviewService, router := setupReviewRouter(t)

	cardID := uuid.New()
	expectedState := &model.ReviewState{
		CardID:       cardID,
		Ease:         2.5,
		IntervalDays: 1,
		Reps:         1,
		DueDate:      time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectError    bool
	}{
		{
			name: "正常系: 評価成功",
			body: model.SubmitRatingRequest{CardID: cardID.String(), Rating: "Good"},
			setupMock: func() {
				mockReviewService.On("ApplyRating", mock.Anything, cardID, srs.RatingGood, mock.AnythingOfType("time.Time")).
					Return(expectedState, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 不正な評価値",
			body:           model.SubmitRatingRequest{CardID: cardID.String(), Rating: "Medium"},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: card_idがUUIDでない",
			body:           model.SubmitRatingRequest{CardID: "not-a-uuid", Rating: "Good"},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: ratingが空",
			body:           model.SubmitRatingRequest{CardID: cardID.String()},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "異常系: 存在しないカードは404",
			body: model.SubmitRatingRequest{CardID: cardID.String(), Rating: "Again"},
			setupMock: func() {
				mockReviewService.On("ApplyRating", mock.Anything, cardID, srs.RatingAgain, mock.AnythingOfType("time.Time")).
					Return(nil, model.NewAppError("NOT_FOUND", "カードが見つかりません。", "card_id", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectError:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			req := createRequest(t, "POST", "/api/v1/reviews", tc.body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectError {
				assertErrorResponse(t, rr.Body.Bytes())
			} else {
				var state model.ReviewState
				err := json.Unmarshal(rr.Body.Bytes(), &state)
				assert.NoError(t, err)
				assert.Equal(t, cardID, state.CardID)
				assert.Equal(t, 1, state.IntervalDays)
			}
		})
	}
}

func TestReviewHandler_GetTodayQueue(t *testing.T) {
	deckID := uuid.New()
	queueItem := &model.QueueItem{
		Card:  &model.Card{CardID: uuid.New(), DeckID: deckID, FrontText: "front", BackText: "back"},
		IsNew: true,
	}

	tests := []struct {
		name           string
		path           string
		setupMock      func(m *mocks.MockReviewService)
		expectedStatus int
		expectedCount  int
		expectError    bool
	}{
		{
			name: "正常系: デッキスコープのキュー取得",
			path: "/api/v1/decks/" + deckID.String() + "/review-queue",
			setupMock: func(m *mocks.MockReviewService) {
				m.On("BuildTodayQueue", mock.Anything, &deckID, mock.AnythingOfType("time.Time"), 20).
					Return([]*model.QueueItem{queueItem}, nil).Once()
				m.On("FilterByLatestRating", mock.Anything, []*model.QueueItem{queueItem}, srs.FilterAll).
					Return([]*model.QueueItem{queueItem}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "正常系: グローバルスコープ + new_limit指定",
			path: "/api/v1/review-queue?new_limit=5",
			setupMock: func(m *mocks.MockReviewService) {
				m.On("BuildTodayQueue", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time"), 5).
					Return([]*model.QueueItem{}, nil).Once()
				m.On("FilterByLatestRating", mock.Anything, []*model.QueueItem{}, srs.FilterAll).
					Return([]*model.QueueItem{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "正常系: new_limitは上限に丸められる",
			path: "/api/v1/review-queue?new_limit=9999",
			setupMock: func(m *mocks.MockReviewService) {
				m.On("BuildTodayQueue", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time"), 100).
					Return([]*model.QueueItem{}, nil).Once()
				m.On("FilterByLatestRating", mock.Anything, []*model.QueueItem{}, srs.FilterAll).
					Return([]*model.QueueItem{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "正常系: filterをサービスへ引き渡す",
			path: "/api/v1/review-queue?filter=Difficult",
			setupMock: func(m *mocks.MockReviewService) {
				m.On("BuildTodayQueue", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time"), 20).
					Return([]*model.QueueItem{queueItem}, nil).Once()
				m.On("FilterByLatestRating", mock.Anything, []*model.QueueItem{queueItem}, srs.FilterDifficult).
					Return([]*model.QueueItem{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "異常系: 不正なfilter値",
			path:           "/api/v1/review-queue?filter=bogus",
			setupMock:      func(m *mocks.MockReviewService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: 不正なdeck_id",
			path:           "/api/v1/decks/not-a-uuid/review-queue",
			setupMock:      func(m *mocks.MockReviewService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "異常系: サービスエラーは500",
			path: "/api/v1/review-queue",
			setupMock: func(m *mocks.MockReviewService) {
				m.On("BuildTodayQueue", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time"), 20).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習キューの取得に失敗しました。", "", model.ErrInternalServer)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectError:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockReviewService, router := setupReviewRouter(t)
			tc.setupMock(mockReviewService)

			req := createRequest(t, "GET", tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectError {
				assertErrorResponse(t, rr.Body.Bytes())
			} else {
				var resp model.QueueResponse
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Len(t, resp.Queue, tc.expectedCount)
			}
		})
	}
}

func TestReviewHandler_GetCounts(t *testing.T) {
	deckID := uuid.New()

	t.Run("正常系: デッキスコープの件数取得", func(t *testing.T) {
		mockReviewService, router := setupReviewRouter(t)
		mockReviewService.On("CountToday", mock.Anything, &deckID, mock.AnythingOfType("time.Time")).
			Return(&model.ReviewCounts{Due: 4, New: 2}, nil).Once()

		req := createRequest(t, "GET", "/api/v1/decks/"+deckID.String()+"/review-counts", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var counts model.ReviewCounts
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counts))
		assert.Equal(t, int64(4), counts.Due)
		assert.Equal(t, int64(2), counts.New)
	})

	t.Run("正常系: グローバルスコープ", func(t *testing.T) {
		mockReviewService, router := setupReviewRouter(t)
		mockReviewService.On("CountToday", mock.Anything, (*uuid.UUID)(nil), mock.AnythingOfType("time.Time")).
			Return(&model.ReviewCounts{}, nil).Once()

		req := createRequest(t, "GET", "/api/v1/review-counts", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("異常系: 不正なdeck_idは400", func(t *testing.T) {
		_, router := setupReviewRouter(t)

		req := createRequest(t, "GET", "/api/v1/decks/not-a-uuid/review-counts", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assertErrorResponse(t, rr.Body.Bytes())
	})
}

func TestReviewHandler_GetFullQueue(t *testing.T) {
	queueItem := &model.QueueItem{
		Card: &model.Card{CardID: uuid.New(), FrontText: "front", BackText: "back"},
		ReviewState: &model.ReviewState{
			IntervalDays: 7,
			Reps:         3,
		},
	}

	t.Run("正常系: グローバルの全カードキュー", func(t *testing.T) {
		mockReviewService, router := setupReviewRouter(t)
		mockReviewService.On("BuildFullQueue", mock.Anything, (*uuid.UUID)(nil)).
			Return([]*model.QueueItem{queueItem}, nil).Once()
		mockReviewService.On("FilterByLatestRating", mock.Anything, []*model.QueueItem{queueItem}, srs.FilterAll).
			Return([]*model.QueueItem{queueItem}, nil).Once()

		req := createRequest(t, "GET", "/api/v1/cards", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.QueueResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Queue, 1)
		assert.False(t, resp.Queue[0].IsNew)
	})
}
