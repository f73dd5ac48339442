package handler

import (
	"fmt"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
	"github.com/hitoshi/talk2me/internal/therapist"
)

// TherapistState はセラピストハンドラーが必要とする状態参照の
// インターフェース。サマリーは集約状態の純粋な読み取り専用消費者。
type TherapistState interface {
	Profile() *model.Profile
	Moods() []model.MoodEntry
	JournalEntries() []model.JournalEntry
}

// TherapistHandler はセラピスト検索とサマリーエクスポートのHTTPハンドラー。
type TherapistHandler struct {
	state TherapistState
}

// NewTherapistHandler はTherapistHandlerを生成する。
func NewTherapistHandler(state TherapistState) *TherapistHandler {
	return &TherapistHandler{state: state}
}

// therapistListView はセラピスト検索のビューモデル。
type therapistListView struct {
	View       string            `json:"view"`
	Query      string            `json:"query"`
	Therapists []model.Therapist `json:"therapists"`
	// クリップボードへのコピーに失敗した場合のフォールバック案内
	ClipboardFallback string `json:"clipboardFallback"`
}

// List はセラピスト紹介リストを検索クエリで絞り込んで返す。
// GET /therapists?q=...
func (h *TherapistHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, therapistListView{
		View:              "therapists",
		Query:             q,
		Therapists:        therapist.Search(q),
		ClipboardFallback: "Copy failed? Export the .txt instead.",
	})
}

// Summary は共有用サマリーをプレーンテキストで返す。
// クリップボード連携のクライアントはこのテキストをそのままコピーする。
// GET /therapists/summary
func (h *TherapistHandler) Summary(w http.ResponseWriter, r *http.Request) {
	text := therapist.BuildSummary(h.state.Profile(), h.state.Moods(), h.state.JournalEntries())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text)
}

// Export は共有用サマリーをダウンロードファイルとして返す。
// GET /therapists/summary/export
func (h *TherapistHandler) Export(w http.ResponseWriter, r *http.Request) {
	profile := h.state.Profile()
	text := therapist.BuildSummary(profile, h.state.Moods(), h.state.JournalEntries())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", therapist.ExportFilename(profile)))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, text)
}
