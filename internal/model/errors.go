// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidTodoID = "INVALID_TODO_ID"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
)

// NewInvalidTodoIDError はTodo IDが整数に変換できない場合のエラーを生成する。
// ストアへのアクセス前に検出するバリデーションエラー。
func NewInvalidTodoIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTodoID,
		Message:  fmt.Sprintf("無効なTodo IDです: %s", raw),
		Category: "validation",
		Action:   "Todo IDには整数を指定してください。",
	}
}

// NewUnauthorizedError は認証が必要な操作への未認証アクセスエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
