// internal/model/app_error.go
package model

import "fmt"

// AppError はエラーコード・ユーザー向けメッセージ・対象フィールドを持つ
// アプリケーションエラーです。Err には ErrNotFound などのセンチネルエラー
// (または根本原因のエラー) をラップし、HTTPステータスの判定に使います。
type AppError struct {
	Code   string
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Code: code,
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		Err: err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
