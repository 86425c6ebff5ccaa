// internal/handlers/deck_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service"
	"go_flashdeck_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type DeckHandler struct {
	service service.DeckService
	logger  *slog.Logger
}

func NewDeckHandler(s service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		service: s,
		logger:  logger,
	}
}

// PostDeck は新しいデッキを作成するためのハンドラ
func (h *DeckHandler) PostDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDeck"))

	var req model.PostDeckRequest
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

	deck, err := h.service.CreateDeck(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck created successfully", slog.String("deck_id", deck.DeckID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, deck, logger)
}

// GetDecks はデッキ一覧を本日の復習件数付きで取得するためのハンドラ
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDecks"))

	summaries, err := h.service.ListDecks(r.Context(), time.Now())
	if err != nil {
		logger.Error("Error listing decks in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if summaries == nil {
		summaries = []*model.DeckSummary{}
	}
	logger.Info("Decks listed successfully", slog.Int("count", len(summaries)))
	webutil.RespondWithJSON(w, http.StatusOK, summaries, logger)
}

// GetDeck はデッキを1件取得するためのハンドラ
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDeck"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	deck, err := h.service.GetDeck(r.Context(), deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

// PutDeck はデッキ名を更新するためのハンドラ
func (h *DeckHandler) PutDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutDeck"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PutDeckRequest
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

	deck, err := h.service.UpdateDeck(r.Context(), deckID, &req)
	if err != nil {
		logger.Error("Error updating deck in service", slog.Any("error", err), slog.String("deck_id", deckID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck updated successfully", slog.String("deck_id", deckID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

// DeleteDeck はデッキを削除するためのハンドラ
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeck"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteDeck(r.Context(), deckID); err != nil {
		logger.Error("Error deleting deck in service", slog.Any("error", err), slog.String("deck_id", deckID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck deleted successfully", slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}
