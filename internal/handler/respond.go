// Package handler はビュールーティングとHTTPハンドラーを提供する。
//
// 参照実装のクライアントサイドルートをそのままパスとして公開し、
// 各GETはビューモデル（JSON）を、POST/PUTは対応する状態変更を担う。
// 状態の所有者は常にstate.Aggregateであり、ハンドラーはフォーム内容の
// 受け渡しのみを行う。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
)

// apiErrorResponse はエラーレスポンスのJSON形。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse は統一エラーフォーマットでレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// writeInvalidRequest はリクエストボディの解析失敗レスポンスを書き込む。
func writeInvalidRequest(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     model.ErrCodeInvalidRequest,
		Message:  "Could not parse the request body.",
		Category: "validation",
		Action:   "Send a well-formed JSON body.",
	})
}

// handleServiceError は状態集約から返されたエラーを適切なHTTPステータス
// コードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Something went wrong on our side.",
		Category: "system",
		Action:   "Please wait a moment and try again.",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMissingRequiredField,
		model.ErrCodeInvalidMoodValue,
		model.ErrCodeInvalidLanguage,
		model.ErrCodeInvalidStressLevel,
		model.ErrCodeInvalidCommStyle,
		model.ErrCodeResetNotConfirmed,
		model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeEmptyText:
		return http.StatusUnprocessableEntity
	case model.ErrCodeCircleNotFound:
		return http.StatusNotFound
	case model.ErrCodeProfileRequired:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
