// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service"
	"go_flashdeck_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard はデッキに新しいカードを作成するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PostCardRequest
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

	card, err := h.service.CreateCard(r.Context(), deckID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetCard はカードを1件取得するためのハンドラ
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.GetCard(r.Context(), cardID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PatchCard はカードを部分更新するためのハンドラ
func (h *CardHandler) PatchCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCard"))

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.PatchCardRequest
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

	card, err := h.service.UpdateCard(r.Context(), cardID, &req)
	if err != nil {
		logger.Error("Error updating card in service", slog.Any("error", err), slog.String("card_id", cardID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card updated successfully", slog.String("card_id", cardID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// DeleteCard はカードを削除するためのハンドラ
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

	cardID, err := uuid.Parse(chi.URLParam(r, "card_id"))
	if err != nil {
		logger.Warn("Invalid card ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "カードIDの形式が正しくありません。", "card_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteCard(r.Context(), cardID); err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err), slog.String("card_id", cardID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// isCSVRequest はボディがCSVそのものかどうかをContent-Typeで判定します
func isCSVRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "text/csv") || strings.HasPrefix(ct, "text/plain")
}

// readCSVBody は text/csv ボディをそのままCSVテキストとして読み取ります
func readCSVBody(r *http.Request) (string, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", model.ErrInvalidInput
	}
	return string(body), nil
}

// ImportCSV はCSVテキストからカードを一括登録するためのハンドラ。
// ボディは text/csv の生テキストと JSON {csv_text} のどちらでも受け付ける。
func (h *CardHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportCSV"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var csvText string
	if isCSVRequest(r) {
		csvText, err = readCSVBody(r)
		if err != nil {
			logger.Warn("Failed to read CSV body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "CSVボディを読み取れません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	} else {
		var req model.ImportCSVRequest
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
		csvText = req.CSVText
	}

	created, err := h.service.ImportCSV(r.Context(), deckID, csvText)
	if err != nil {
		logger.Error("Error importing CSV in service", slog.Any("error", err), slog.String("deck_id", deckID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("CSV imported successfully", slog.String("deck_id", deckID.String()), slog.Int("created", created))
	webutil.RespondWithJSON(w, http.StatusCreated, model.ImportCSVResponse{Created: created}, logger)
}

// ImportWords は単語リストCSVからカードを自動生成して登録するためのハンドラ。
// ボディは text/csv の生テキストと JSON {csv_text, limit} のどちらでも受け付ける。
func (h *CardHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportWords"))

	deckID, err := uuid.Parse(chi.URLParam(r, "deck_id"))
	if err != nil {
		logger.Warn("Invalid deck ID format in URL", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "デッキIDの形式が正しくありません。", "deck_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var csvText string
	limit := 0
	if isCSVRequest(r) {
		csvText, err = readCSVBody(r)
		if err != nil {
			logger.Warn("Failed to read CSV body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "CSVボディを読み取れません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	} else {
		var req model.ImportWordsRequest
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
		csvText = req.CSVText
		if req.Limit != nil {
			limit = *req.Limit
		}
	}

	result, err := h.service.ImportWords(r.Context(), deckID, csvText, limit)
	if err != nil {
		logger.Error("Error importing words in service", slog.Any("error", err), slog.String("deck_id", deckID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Words imported successfully",
		slog.String("deck_id", deckID.String()),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, result, logger)
}
