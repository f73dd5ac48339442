// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, state, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidMoodValue     = "INVALID_MOOD_VALUE"
	ErrCodeEmptyText            = "EMPTY_TEXT"
	ErrCodeCircleNotFound       = "CIRCLE_NOT_FOUND"
	ErrCodeProfileRequired      = "PROFILE_REQUIRED"
	ErrCodeInvalidLanguage      = "INVALID_LANGUAGE"
	ErrCodeInvalidStressLevel   = "INVALID_STRESS_LEVEL"
	ErrCodeInvalidCommStyle     = "INVALID_COMM_STYLE"
	ErrCodeResetNotConfirmed    = "RESET_NOT_CONFIRMED"
)

// NewMissingRequiredFieldError は必須項目未入力エラーを生成する。
func NewMissingRequiredFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingRequiredField,
		Message:  fmt.Sprintf("Required field is missing: %s", field),
		Category: "validation",
		Action:   "Fill in the required field and submit again.",
	}
}

// NewInvalidMoodValueError はムード値が1〜5の範囲外の場合のエラーを生成する。
func NewInvalidMoodValueError(value int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMoodValue,
		Message:  fmt.Sprintf("Mood value out of range: %d", value),
		Category: "validation",
		Action:   "Choose a mood between 1 (very low) and 5 (great).",
	}
}

// NewEmptyTextError は空文字または空白のみのテキストが送信された場合のエラーを生成する。
func NewEmptyTextError(what string) *APIError {
	return &APIError{
		Code:     ErrCodeEmptyText,
		Message:  fmt.Sprintf("Nothing to save: %s is empty.", what),
		Category: "validation",
		Action:   "Write something first, then submit.",
	}
}

// NewCircleNotFoundError はコミュニティが見つからない場合のエラーを生成する。
func NewCircleNotFoundError(circleID string) *APIError {
	return &APIError{
		Code:     ErrCodeCircleNotFound,
		Message:  fmt.Sprintf("Community not found: %s", circleID),
		Category: "state",
		Action:   "Pick a community from the list.",
	}
}

// NewProfileRequiredError はプロフィール未作成で保護ページにアクセスした場合のエラーを生成する。
func NewProfileRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileRequired,
		Message:  "No profile yet. Finish sign-up first.",
		Category: "state",
		Action:   "Complete onboarding from the start page.",
	}
}

// NewInvalidLanguageError はサポート外の言語が指定された場合のエラーを生成する。
func NewInvalidLanguageError(lang string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidLanguage,
		Message:  fmt.Sprintf("Unsupported language: %s", lang),
		Category: "validation",
		Action:   "Choose one of: English, Spanish, Hindi, Mandarin, Arabic.",
	}
}

// NewInvalidStressLevelError はサポート外のストレスレベルが指定された場合のエラーを生成する。
func NewInvalidStressLevelError(level string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStressLevel,
		Message:  fmt.Sprintf("Unknown stress level: %s", level),
		Category: "validation",
		Action:   "Choose one of: Low, Medium, High, Very high.",
	}
}

// NewInvalidCommStyleError はサポート外のコミュニケーションスタイルが指定された場合のエラーを生成する。
func NewInvalidCommStyleError(style string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCommStyle,
		Message:  fmt.Sprintf("Unknown communication style: %s", style),
		Category: "validation",
		Action:   "Choose one of: Gentle, Direct, Encouraging, Humorous.",
	}
}

// NewResetNotConfirmedError は確認なしでリセットが要求された場合のエラーを生成する。
func NewResetNotConfirmedError() *APIError {
	return &APIError{
		Code:     ErrCodeResetNotConfirmed,
		Message:  "Reset requires explicit confirmation.",
		Category: "validation",
		Action:   "Send the request again with confirm=true to clear all data.",
	}
}
