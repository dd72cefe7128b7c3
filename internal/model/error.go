// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict") // SRSレビューのユニーク制約違反用
)

// ErrorDetail はAPIエラーレスポンスに含める詳細情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・メッセージと根本原因をまとめたカスタムエラー
type AppError struct {
	Detail ErrorDetail
	Err    error // ラップされた根本原因 (ErrNotFound など)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Detail.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError はAppErrorを生成するヘルパー
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
