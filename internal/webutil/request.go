// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"net/http"

	"go_flashdeck_keep/internal/middleware"
	"go_flashdeck_keep/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		middleware.GetLogger(r.Context()).Warn("Error decoding JSON body", "error", err)
		return model.ErrInvalidInput
	}
	return nil
}
