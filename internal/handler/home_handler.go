package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/talk2me/internal/model"
)

// recentMoodsShown はホームに表示する直近ムードの件数。
const recentMoodsShown = 5

// HomeState はホームハンドラーが必要とする状態操作のインターフェース。
type HomeState interface {
	Profile() *model.Profile
	Moods() []model.MoodEntry
	AddMood(ctx context.Context, value int, note string) (model.MoodEntry, error)
	ManualOffline() bool
	SetManualOffline(ctx context.Context, offline bool)
	UILanguage() string
	SetUILanguage(ctx context.Context, lang string) error
}

// HomeHandler はホームビューとムードチェックインのHTTPハンドラー。
type HomeHandler struct {
	state HomeState
}

// NewHomeHandler はHomeHandlerを生成する。
func NewHomeHandler(state HomeState) *HomeHandler {
	return &HomeHandler{state: state}
}

// dailyReads はホームに表示する固定の読み物カード。
var dailyReads = []string{
	"You're not behind—different path, same goal.",
	"2-minute breath reset.",
	"Visa stress ≠ your identity.",
	"Short walk = mood boost.",
}

// notifications はホームに表示する固定の通知デモ。
var notifications = []string{
	"Tea & Talk starts in 30 min near ISSS.",
	"New post in \"Women in STEM (Grad)\".",
}

// actionCard はホームのアクションカード1枚。
type actionCard struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Sub   string `json:"sub"`
}

// actionCards はホームの4枚の固定アクションカード。
var actionCards = []actionCard{
	{To: "/journal", Title: "Daily Journal", Sub: "Reflect in 60 seconds"},
	{To: "/coach", Title: "Talk to AI Coach", Sub: "Private, 24/7 support"},
	{To: "/therapists", Title: "Talk to Real Therapist", Sub: "When you're ready"},
	{To: "/community", Title: "Join Community", Sub: "Connect with peers"},
}

// moodResponse はムードエントリのレスポンス形。
type moodResponse struct {
	Value     int       `json:"value"`
	Label     string    `json:"label"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"ts"`
}

// homeView はホームのビューモデル。
type homeView struct {
	View          string         `json:"view"`
	Name          string         `json:"name"`
	Actions       []actionCard   `json:"actions"`
	RecentMoods   []moodResponse `json:"recentMoods"`
	DailyReads    []string       `json:"dailyReads"`
	Notifications []string       `json:"notifications"`
	ManualOffline bool           `json:"manualOffline"`
	UILanguage    string         `json:"uiLanguage"`
}

// moodRequest はムードチェックインの送信内容。
type moodRequest struct {
	Value int    `json:"value"`
	Note  string `json:"note"`
}

// offlineRequest は手動オフライン切り替えの送信内容。
type offlineRequest struct {
	Offline bool `json:"offline"`
}

// languageRequest はUI言語変更の送信内容。
type languageRequest struct {
	Language string `json:"language"`
}

// Home はホームのビューモデルを返す。
// GET /home （および GET / のプロフィール作成済み分岐）
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	name := "there"
	if p := h.state.Profile(); p != nil && p.Name != "" {
		name = p.Name
	}

	moods := h.state.Moods()
	recent := make([]moodResponse, 0, recentMoodsShown)
	// 直近5件を新しい順で返す
	for i := len(moods) - 1; i >= 0 && len(recent) < recentMoodsShown; i-- {
		m := moods[i]
		recent = append(recent, moodResponse{
			Value:     m.Value,
			Label:     model.MoodLabel(m.Value),
			Note:      m.Note,
			Timestamp: m.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, homeView{
		View:          "home",
		Name:          name,
		Actions:       actionCards,
		RecentMoods:   recent,
		DailyReads:    dailyReads,
		Notifications: notifications,
		ManualOffline: h.state.ManualOffline(),
		UILanguage:    h.state.UILanguage(),
	})
}

// AddMood はムードチェックインを記録する。値が1〜5の範囲外の場合は
// 拒否する。
// POST /moods
func (h *HomeHandler) AddMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	entry, err := h.state.AddMood(r.Context(), req.Value, req.Note)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, moodResponse{
		Value:     entry.Value,
		Label:     model.MoodLabel(entry.Value),
		Note:      entry.Note,
		Timestamp: entry.Timestamp,
	})
}

// SetOffline は手動オフラインフラグを切り替える。フラグは表示専用。
// PUT /offline
func (h *HomeHandler) SetOffline(w http.ResponseWriter, r *http.Request) {
	var req offlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	h.state.SetManualOffline(r.Context(), req.Offline)
	writeJSON(w, http.StatusOK, map[string]bool{"offline": req.Offline})
}

// SetLanguage はUI言語を変更する。
// PUT /language
func (h *HomeHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	if err := h.state.SetUILanguage(r.Context(), req.Language); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": req.Language})
}
