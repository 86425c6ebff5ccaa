// internal/service/wordhelper_service_test.go
package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_flashdeck_keep/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_wordHelperService_BuildDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 辞書と画像検索の結果でドラフトを組み立てる", func(t *testing.T) {
		dictServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/serendipity", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{
				"word": "serendipity",
				"phonetic": "/ˌsɛɹ.ənˈdɪp.ɪ.ti/",
				"phonetics": [{"text": "/ˌsɛɹ.ənˈdɪp.ɪ.ti/", "audio": "https://example.com/serendipity.mp3"}],
				"meanings": [{
					"partOfSpeech": "noun",
					"definitions": [
						{"definition": "An unsought, unintended fortunate discovery.", "example": "It was pure serendipity."}
					]
				}]
			}]`))
		}))
		defer dictServer.Close()

		imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "serendipity", r.URL.Query().Get("q"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"hits": [
				{"id": 101, "tags": "luck, discovery", "webformatURL": "https://example.com/101.jpg"},
				{"id": 102, "tags": "fortune", "webformatURL": "https://example.com/102.jpg"}
			]}`))
		}))
		defer imageServer.Close()

		svc := NewWordHelperService(config.WordHelperConfig{
			DictionaryBaseURL: dictServer.URL,
			PixabayBaseURL:    imageServer.URL,
			PixabayAPIKey:     "test-key",
			TimeoutSeconds:    5,
		})

		draft, err := svc.BuildDraft(ctx, "serendipity")
		require.NoError(t, err)

		assert.Equal(t, "serendipity", draft.TargetWord)
		require.NotNil(t, draft.Phonetic)
		assert.Equal(t, "/ˌsɛɹ.ənˈdɪp.ɪ.ti/", *draft.Phonetic)
		require.NotNil(t, draft.AudioURL)
		assert.Equal(t, "https://example.com/serendipity.mp3", *draft.AudioURL)
		assert.Equal(t, "It was pure serendipity.", draft.FrontText)
		assert.Equal(t, "(noun) An unsought, unintended fortunate discovery.", draft.BackText)
		require.Len(t, draft.ImageOptions, 2)
		assert.Equal(t, "https://example.com/101.jpg", draft.ImageURL)
	})

	t.Run("正常系: 辞書APIが落ちていてもテンプレートで埋めて返す", func(t *testing.T) {
		dictServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer dictServer.Close()

		svc := NewWordHelperService(config.WordHelperConfig{
			DictionaryBaseURL: dictServer.URL,
			PixabayBaseURL:    "http://127.0.0.1:1", // キー未設定なので呼ばれない
			TimeoutSeconds:    5,
		})

		draft, err := svc.BuildDraft(ctx, "unknownword")
		require.NoError(t, err, "external failures must degrade, not error")

		assert.Equal(t, "unknownword", draft.TargetWord)
		assert.NotEmpty(t, draft.FrontText)
		assert.NotEmpty(t, draft.BackText)
		assert.NotEmpty(t, draft.ExampleOptions)
		assert.NotEmpty(t, draft.DefinitionOptions)
		assert.Contains(t, draft.FrontText, "unknownword")
		assert.Empty(t, draft.ImageOptions)
	})

	t.Run("正常系: APIキー未設定なら画像検索を呼ばない", func(t *testing.T) {
		called := false
		imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer imageServer.Close()
		dictServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer dictServer.Close()

		svc := NewWordHelperService(config.WordHelperConfig{
			DictionaryBaseURL: dictServer.URL,
			PixabayBaseURL:    imageServer.URL,
			TimeoutSeconds:    5,
		})

		draft, err := svc.BuildDraft(ctx, "cat")
		require.NoError(t, err)
		assert.False(t, called)
		assert.Empty(t, draft.ImageOptions)
	})
}
