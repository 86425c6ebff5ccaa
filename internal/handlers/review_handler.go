// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go_flashdeck_keep/internal/config"
	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service"
	"go_flashdeck_keep/internal/srs"
	"go_flashdeck_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// deckScopeFromURL はURLの deck_id を読み取ります。パスに含まれないルートでは nil (グローバル)。
func deckScopeFromURL(r *http.Request) (*uuid.UUID, error) {
	raw := chi.URLParam(r, "deck_id")
	if raw == "" {
		return nil, nil
	}
	deckID, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &deckID, nil
}

// ratingFilterFromQuery は filter クエリを読み取ります。未指定は all 扱い。
func ratingFilterFromQuery(r *http.Request) (srs.RatingFilter, bool) {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		return srs.FilterAll, true
	}
	return srs.ParseRatingFilter(raw)
}

// newLimitFromQuery は new_limit クエリを読み取り、上限内に丸めます
func newLimitFromQuery(r *http.Request) int {
	raw := r.URL.Query().Get("new_limit")
	if raw == "" {
		return config.Cfg.App.NewLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return config.Cfg.App.NewLimit
	}
	if n > config.MaxNewLimit {
		return config.MaxNewLimit
	}
	return n
}

// GetTodayQueue は「今日のキュー」(期日到来 + 新規) を返すハンドラ。
// deck_id 付きルートではデッキスコープ、なしではグローバルスコープで動作します。
func (h *ReviewHandler) GetTodayQueue(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTodayQueue"))

	deckID, err := deckScopeFromURL(r)
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	filter, ok := ratingFilterFromQuery(r)
	if !ok {
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "filterに許可されていない値が指定されています。", "filter", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	queue, err := h.service.BuildTodayQueue(r.Context(), deckID, time.Now(), newLimitFromQuery(r))
	if err != nil {
		logger.Error("Error building today queue in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	queue, err = h.service.FilterByLatestRating(r.Context(), queue, filter)
	if err != nil {
		logger.Error("Error filtering queue in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if queue == nil {
		queue = []*model.QueueItem{}
	}
	logger.Info("Today queue returned", slog.Int("count", len(queue)))
	webutil.RespondWithJSON(w, http.StatusOK, model.QueueResponse{Queue: queue}, logger)
}

// GetFullQueue はスコープ内の全カードのキューを返すハンドラ (ブラウズ用)
func (h *ReviewHandler) GetFullQueue(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFullQueue"))

	deckID, err := deckScopeFromURL(r)
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	filter, ok := ratingFilterFromQuery(r)
	if !ok {
		appErr := model.NewAppError("INVALID_QUERY_PARAM", "filterに許可されていない値が指定されています。", "filter", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	queue, err := h.service.BuildFullQueue(r.Context(), deckID)
	if err != nil {
		logger.Error("Error building full queue in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	queue, err = h.service.FilterByLatestRating(r.Context(), queue, filter)
	if err != nil {
		logger.Error("Error filtering queue in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if queue == nil {
		queue = []*model.QueueItem{}
	}
	logger.Info("Full queue returned", slog.Int("count", len(queue)))
	webutil.RespondWithJSON(w, http.StatusOK, model.QueueResponse{Queue: queue}, logger)
}

// GetCounts はスコープ内の本日分の期日到来件数・新規件数を返すハンドラ
func (h *ReviewHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCounts"))

	deckID, err := deckScopeFromURL(r)
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	counts, err := h.service.CountToday(r.Context(), deckID, time.Now())
	if err != nil {
		logger.Error("Error counting today's reviews in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, counts, logger)
}

// PostReview はカードへの評価を登録するハンドラ
func (h *ReviewHandler) PostReview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReview"))

	var req model.SubmitRatingRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError("VALIDATION_ERROR", translatedMsg, firstErr.Field(), model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "カードIDは有効なUUID形式ではありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	rating, ok := srs.ParseRating(req.Rating)
	if !ok {
		appErr := model.NewAppError("VALIDATION_ERROR", "評価に許可されていない値が指定されています。", "rating", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	state, err := h.service.ApplyRating(r.Context(), cardID, rating, time.Now())
	if err != nil {
		logger.Error("Error applying rating in service", slog.Any("error", err), slog.String("card_id", cardID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review recorded successfully",
		slog.String("card_id", cardID.String()),
		slog.String("rating", string(rating)),
	)
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}
