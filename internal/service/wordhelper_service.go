// internal/service/wordhelper_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_flashdeck_keep/internal/config"
	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"
)

// WordHelperService は単語からカードの下書きを組み立てます。
// 辞書APIと画像検索APIは補助的な情報源で、どちらが落ちていても
// テンプレートで全フィールドを埋めた下書きを返します (ベストエフォート)。
type WordHelperService interface {
	BuildDraft(ctx context.Context, word string) (*model.CardDraft, error)
}

type wordHelperService struct {
	client *http.Client
	cfg    config.WordHelperConfig
}

func NewWordHelperService(cfg config.WordHelperConfig) WordHelperService {
	return &wordHelperService{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cfg:    cfg,
	}
}

// dictionaryapi.dev のレスポンス (必要なフィールドのみ)
type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Pixabay のレスポンス (必要なフィールドのみ)
type pixabayResponse struct {
	Hits []struct {
		ID           int    `json:"id"`
		Tags         string `json:"tags"`
		WebformatURL string `json:"webformatURL"`
	} `json:"hits"`
}

func (s *wordHelperService) BuildDraft(ctx context.Context, word string) (*model.CardDraft, error) {
	logger := middleware.GetLogger(ctx)
	word = strings.TrimSpace(word)

	draft := &model.CardDraft{
		Word:       word,
		TargetWord: word,
		Tags:       "vocabulary",
		Level:      3,
	}

	// 辞書API (失敗してもテンプレートで続行)
	entry, err := s.fetchDictionary(ctx, word)
	if err != nil {
		logger.Warn("Dictionary lookup failed, falling back to templates", "word", word, "error", err)
	}
	applyDictionary(draft, entry, word)

	// 画像検索 (キー未設定・失敗時は候補なし)
	images, err := s.fetchImages(ctx, word)
	if err != nil {
		logger.Warn("Image search failed, continuing without images", "word", word, "error", err)
	}
	draft.ImageOptions = images
	if len(images) > 0 {
		draft.ImageURL = images[0].URL
	}

	return draft, nil
}

func (s *wordHelperService) fetchDictionary(ctx context.Context, word string) (*dictionaryEntry, error) {
	reqURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.DictionaryBaseURL, "/"), url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchDictionary: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchDictionary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordHelperService.fetchDictionary: unexpected status %d", resp.StatusCode)
	}

	var entries []dictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchDictionary: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("wordHelperService.fetchDictionary: empty result")
	}
	return &entries[0], nil
}

func (s *wordHelperService) fetchImages(ctx context.Context, word string) ([]model.ImageOption, error) {
	if s.cfg.PixabayAPIKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("key", s.cfg.PixabayAPIKey)
	q.Set("q", word)
	q.Set("image_type", "photo")
	q.Set("per_page", "5")
	q.Set("safesearch", "true")
	reqURL := s.cfg.PixabayBaseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchImages: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchImages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordHelperService.fetchImages: unexpected status %d", resp.StatusCode)
	}

	var body pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("wordHelperService.fetchImages: %w", err)
	}

	options := make([]model.ImageOption, 0, len(body.Hits))
	for _, hit := range body.Hits {
		options = append(options, model.ImageOption{
			ID:    fmt.Sprintf("%d", hit.ID),
			Label: hit.Tags,
			URL:   hit.WebformatURL,
		})
	}
	return options, nil
}

// applyDictionary は辞書の結果を下書きに反映します。entry が nil ならテンプレートのみ。
func applyDictionary(draft *model.CardDraft, entry *dictionaryEntry, word string) {
	var examples []string
	var definitions []string

	if entry != nil {
		if entry.Phonetic != "" {
			phonetic := entry.Phonetic
			draft.Phonetic = &phonetic
		}
		for _, p := range entry.Phonetics {
			if draft.Phonetic == nil && p.Text != "" {
				text := p.Text
				draft.Phonetic = &text
			}
			if draft.AudioURL == nil && p.Audio != "" {
				audio := p.Audio
				draft.AudioURL = &audio
			}
		}
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if def.Definition != "" {
					definitions = append(definitions, fmt.Sprintf("(%s) %s", meaning.PartOfSpeech, def.Definition))
				}
				if def.Example != "" {
					examples = append(examples, def.Example)
				}
			}
		}
	}

	// 例文・定義が得られなくても空のままにせずテンプレートで埋める
	if len(examples) == 0 {
		examples = []string{
			fmt.Sprintf("I came across the word \"%s\" yesterday.", word),
			fmt.Sprintf("Can you use \"%s\" in a sentence?", word),
		}
	}
	if len(definitions) == 0 {
		definitions = []string{fmt.Sprintf("Meaning of \"%s\"", word)}
	}

	draft.ExampleOptions = examples
	draft.DefinitionOptions = definitions
	draft.FrontText = examples[0]
	draft.BackText = definitions[0]
}
