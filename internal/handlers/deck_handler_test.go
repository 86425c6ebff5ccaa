// internal/handlers/deck_handler_test.go
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
)

func setupDeckRouter(t *testing.T) (*mocks.MockDeckService, *chi.Mux) {
	t.Helper()
	mockDeckService := mocks.NewMockDeckService(t)
	deckHandler := handlers.NewDeckHandler(mockDeckService, discardLogger())

	router := chi.NewRouter()
	router.Route("/api/v1/decks", func(r chi.Router) {
		r.Post("/", deckHandler.PostDeck)
		r.Get("/", deckHandler.GetDecks)
		r.Get("/{deck_id}", deckHandler.GetDeck)
		r.Put("/{deck_id}", deckHandler.PutDeck)
		r.Delete("/{deck_id}", deckHandler.DeleteDeck)
	})
	return mockDeckService, router
}

func TestDeckHandler_PostDeck(t *testing.T) {
	validReqBody := model.PostDeckRequest{Name: "英単語"}
	expectedDeck := &model.Deck{
		DeckID:    uuid.New(),
		Name:      validReqBody.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.MockDeckService)
		expectedStatus int
		expectError    bool
	}{
		{
			name: "正常系: デッキ作成成功",
			body: validReqBody,
			setupMock: func(m *mocks.MockDeckService) {
				m.On("CreateDeck", mock.Anything, &validReqBody).
					Return(expectedDeck, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: nameが空",
			body:           model.PostDeckRequest{},
			setupMock:      func(m *mocks.MockDeckService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "異常系: 同名デッキは409",
			body: validReqBody,
			setupMock: func(m *mocks.MockDeckService) {
				m.On("CreateDeck", mock.Anything, &validReqBody).
					Return(nil, model.NewAppError("CONFLICT", "同じ名前のデッキが既に存在します。", "name", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectError:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDeckService, router := setupDeckRouter(t)
			tc.setupMock(mockDeckService)

			req := createRequest(t, "POST", "/api/v1/decks", tc.body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectError {
				assertErrorResponse(t, rr.Body.Bytes())
			} else {
				var deck model.Deck
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deck))
				assert.Equal(t, expectedDeck.Name, deck.Name)
				assert.NotEqual(t, uuid.Nil, deck.DeckID)
			}
		})
	}
}

func TestDeckHandler_GetDecks(t *testing.T) {
	t.Run("正常系: 件数付き一覧を返す", func(t *testing.T) {
		mockDeckService, router := setupDeckRouter(t)
		summaries := []*model.DeckSummary{
			{Deck: &model.Deck{DeckID: uuid.New(), Name: "deck1"}, DueCount: 3, NewCount: 2},
		}
		mockDeckService.On("ListDecks", mock.Anything, mock.AnythingOfType("time.Time")).
			Return(summaries, nil).Once()

		req := createRequest(t, "GET", "/api/v1/decks", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []*model.DeckSummary
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(3), resp[0].DueCount)
	})
}

func TestDeckHandler_DeleteDeck(t *testing.T) {
	deckID := uuid.New()

	tests := []struct {
		name           string
		path           string
		setupMock      func(m *mocks.MockDeckService)
		expectedStatus int
	}{
		{
			name: "正常系: 削除成功は204",
			path: "/api/v1/decks/" + deckID.String(),
			setupMock: func(m *mocks.MockDeckService) {
				m.On("DeleteDeck", mock.Anything, deckID).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "異常系: 存在しないデッキは404",
			path: "/api/v1/decks/" + deckID.String(),
			setupMock: func(m *mocks.MockDeckService) {
				m.On("DeleteDeck", mock.Anything, deckID).
					Return(model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "deck_id", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "異常系: 不正なdeck_idは400",
			path:           "/api/v1/decks/not-a-uuid",
			setupMock:      func(m *mocks.MockDeckService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockDeckService, router := setupDeckRouter(t)
			tc.setupMock(mockDeckService)

			req := createRequest(t, "DELETE", tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
