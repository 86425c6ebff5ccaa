// internal/handlers/wordhelper_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_flashdeck_keep/internal/handlers"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service/mocks"
)

func setupWordHelperRouter(t *testing.T) (*mocks.MockWordHelperService, *chi.Mux) {
	t.Helper()
	mockWordHelperService := mocks.NewMockWordHelperService(t)
	wordHelperHandler := handlers.NewWordHelperHandler(mockWordHelperService, discardLogger())

	router := chi.NewRouter()
	router.Post("/api/v1/word-helper", wordHelperHandler.PostWordHelper)
	return mockWordHelperService, router
}

func TestWordHelperHandler_PostWordHelper(t *testing.T) {
	draft := &model.CardDraft{
		Word:       "apple",
		TargetWord: "apple",
		FrontText:  "I ate an apple.",
		BackText:   "(noun) a round fruit",
		Tags:       "vocabulary",
		Level:      3,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.MockWordHelperService)
		expectedStatus int
		expectError    bool
	}{
		{
			name: "正常系: 下書き生成成功",
			body: model.WordHelperRequest{Word: "apple"},
			setupMock: func(m *mocks.MockWordHelperService) {
				m.On("BuildDraft", mock.Anything, "apple").Return(draft, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: wordが空",
			body:           model.WordHelperRequest{},
			setupMock:      func(m *mocks.MockWordHelperService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: 英字以外を含むwordは400",
			body:           model.WordHelperRequest{Word: "hello world!"},
			setupMock:      func(m *mocks.MockWordHelperService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: 数字混じりのwordは400",
			body:           model.WordHelperRequest{Word: "apple123"},
			setupMock:      func(m *mocks.MockWordHelperService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "異常系: 101文字のwordは400",
			body:           model.WordHelperRequest{Word: strings.Repeat("a", 101)},
			setupMock:      func(m *mocks.MockWordHelperService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockWordHelperService, router := setupWordHelperRouter(t)
			tc.setupMock(mockWordHelperService)

			req := createRequest(t, "POST", "/api/v1/word-helper", tc.body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectError {
				assertErrorResponse(t, rr.Body.Bytes())
			} else {
				var resp model.WordHelperResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "apple", resp.Draft.Word)
			}
		})
	}
}
