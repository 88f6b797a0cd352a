// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, article, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeArticleNotFound = "ARTICLE_NOT_FOUND"
	ErrCodeInvalidStatus   = "INVALID_STATUS"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeUsernameTaken   = "USERNAME_TAKEN"
	ErrCodeLoginFailed     = "LOGIN_FAILED"
	ErrCodeUserNotFound    = "USER_NOT_FOUND"
)

// NewArticleNotFoundError は記事未検出エラーを生成する。
func NewArticleNotFoundError(articleID int64) *APIError {
	return &APIError{
		Code:     ErrCodeArticleNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %d", articleID),
		Category: "article",
		Action:   "記事IDを確認してください。",
	}
}

// NewInvalidStatusError は無効なステータスエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("無効なステータスです: %s。%s のいずれかを指定してください。", status, StatusValuesString()),
		Category: "validation",
		Action:   "ステータスには draft、published、archived のいずれかを指定してください。",
	}
}

// NewUsernameTakenError はユーザー名重複エラーを生成する。
func NewUsernameTakenError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUsernameTaken,
		Message:  fmt.Sprintf("このユーザー名は既に使用されています: %s", username),
		Category: "auth",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewLoginFailedError はログイン失敗エラーを生成する。
// ユーザー名の存在有無を区別しない単一のメッセージを返す。
func NewLoginFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeLoginFailed,
		Message:  "ユーザー名またはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
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
