package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
)

// ChatState はチャットハンドラーが必要とする状態参照のインターフェース。
type ChatState interface {
	Profile() *model.Profile
	ChatLog() []model.ChatMessage
}

// ChatSender はユーザー発話の処理インターフェース。coach.Serviceが実装する。
type ChatSender interface {
	// Send は発話を処理し、追記された（ユーザー発話, 応答）のペアを返す。
	Send(ctx context.Context, text string) ([]model.ChatMessage, error)
}

// ChatHandler はコーチチャットのHTTPハンドラー。
type ChatHandler struct {
	state  ChatState
	sender ChatSender
}

// NewChatHandler はChatHandlerを生成する。
func NewChatHandler(state ChatState, sender ChatSender) *ChatHandler {
	return &ChatHandler{state: state, sender: sender}
}

// chatView はチャット画面のビューモデル。
type chatView struct {
	View     string              `json:"view"`
	Coach    *model.Coach        `json:"coach,omitempty"`
	Messages []model.ChatMessage `json:"messages"`
}

// chatRequest はユーザー発話の送信内容。
type chatRequest struct {
	Text string `json:"text"`
}

// chatTurnResponse は1ターンの処理結果。
type chatTurnResponse struct {
	Messages []model.ChatMessage `json:"messages"`
}

// View はチャット画面のビューモデルを返す。
// GET /coach
func (h *ChatHandler) View(w http.ResponseWriter, r *http.Request) {
	view := chatView{
		View:     "coach",
		Messages: h.state.ChatLog(),
	}
	if p := h.state.Profile(); p != nil {
		view.Coach = p.Coach
	}
	writeJSON(w, http.StatusOK, view)
}

// Send はユーザー発話を処理してスクリプト応答を返す。
// POST /coach/messages
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	turn, err := h.sender.Send(r.Context(), req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chatTurnResponse{Messages: turn})
}
