package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
)

// JournalState はジャーナルハンドラーが必要とする状態操作のインターフェース。
type JournalState interface {
	JournalEntries() []model.JournalEntry
	AddJournalEntry(ctx context.Context, text string) (model.JournalEntry, error)
}

// JournalHandler はジャーナルのHTTPハンドラー。
type JournalHandler struct {
	state JournalState
}

// NewJournalHandler はJournalHandlerを生成する。
func NewJournalHandler(state JournalState) *JournalHandler {
	return &JournalHandler{state: state}
}

// journalView はジャーナルのビューモデル。エントリは新しい順。
type journalView struct {
	View    string               `json:"view"`
	Entries []model.JournalEntry `json:"entries"`
}

// journalRequest はジャーナル保存の送信内容。
type journalRequest struct {
	Text string `json:"text"`
}

// List はジャーナルの全エントリを新しい順で返す。
// GET /journal
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.state.JournalEntries()

	// 表示は新しい順（保存順は挿入順のまま）
	reversed := make([]model.JournalEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}

	writeJSON(w, http.StatusOK, journalView{
		View:    "journal",
		Entries: reversed,
	})
}

// Add はジャーナルエントリを保存する。空または空白のみのテキストは
// 拒否する。
// POST /journal
func (h *JournalHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	entry, err := h.state.AddJournalEntry(r.Context(), req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}
