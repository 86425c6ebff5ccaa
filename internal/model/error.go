// internal/model/error.go
package model

import "fmt"

// アプリケーション固有のエラー
var (
	ErrNotFound       = &sentinelError{"resource not found"}
	ErrInvalidInput   = &sentinelError{"invalid input"}
	ErrInternalServer = &sentinelError{"internal server error"}
	ErrConflict       = &sentinelError{"resource conflict"} // 重複エラー用
	ErrForbidden      = &sentinelError{"forbidden"}
)

type sentinelError struct{ msg string }

func (e *sentinelError) Error() string { return e.msg }

// ErrorDetail はクライアントに返すエラーの詳細です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・ユーザー向けメッセージ・原因エラーをまとめたカスタムエラーです。
// webutil.HandleError がこの型を解釈してHTTPレスポンスを組み立てます。
type AppError struct {
	Detail ErrorDetail
	Err    error // 根本原因 (ErrNotFound などのセンチネルをラップする)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError は AppError を生成します。field は対象フィールドがない場合は空文字列。
func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}
