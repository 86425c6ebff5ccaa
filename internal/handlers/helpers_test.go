// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"go_flashdeck_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// テスト用のログ出力しないロガー
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createRequest はJSONボディ付きのテストリクエストを組み立てます
func createRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reqBodyReader io.Reader
	if body != nil {
		reqBodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reqBodyReader = bytes.NewBuffer(reqBodyBytes)
	}

	req, err := http.NewRequest(method, path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// createRawRequest は生ボディとContent-Typeを指定してテストリクエストを組み立てます
func createRawRequest(t *testing.T, method, path, contentType, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err, "Failed to create request")
	req.Header.Set("Content-Type", contentType)
	return req
}

// assertErrorResponse はエラーボディの形 {"error":{code,message}} を検証します
func assertErrorResponse(t *testing.T, body []byte) model.ErrorDetail {
	t.Helper()

	var errResp model.APIErrorResponse
	err := json.Unmarshal(body, &errResp)
	require.NoError(t, err, "error response must be valid JSON")
	assert.NotEmpty(t, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
	return errResp.Error
}
