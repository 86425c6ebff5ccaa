// internal/handlers/wordhelper_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_flashdeck_keep/internal/model"
	"go_flashdeck_keep/internal/service"
	"go_flashdeck_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type WordHelperHandler struct {
	service service.WordHelperService
	logger  *slog.Logger
}

func NewWordHelperHandler(s service.WordHelperService, logger *slog.Logger) *WordHelperHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHelperHandler{
		service: s,
		logger:  logger,
	}
}

// PostWordHelper は単語からカードの下書きを生成するハンドラ
func (h *WordHelperHandler) PostWordHelper(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWordHelper"))

	var req model.WordHelperRequest
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

	draft, err := h.service.BuildDraft(r.Context(), req.Word)
	if err != nil {
		logger.Error("Error building card draft in service", slog.Any("error", err), slog.String("word", req.Word))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card draft built successfully", slog.String("word", req.Word))
	webutil.RespondWithJSON(w, http.StatusOK, model.WordHelperResponse{Draft: draft}, logger)
}
