package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
)

// SettingsState は設定ハンドラーが必要とする状態操作のインターフェース。
type SettingsState interface {
	Profile() *model.Profile
	SetProfile(ctx context.Context, p model.Profile) error
	SetCoach(ctx context.Context, c model.Coach) error
	Reset(ctx context.Context) error
}

// SettingsHandler は設定画面とフルリセットのHTTPハンドラー。
type SettingsHandler struct {
	state SettingsState
}

// NewSettingsHandler はSettingsHandlerを生成する。
func NewSettingsHandler(state SettingsState) *SettingsHandler {
	return &SettingsHandler{state: state}
}

// settingsView は設定画面のビューモデル。
type settingsView struct {
	View      string         `json:"view"`
	Profile   *model.Profile `json:"profile"`
	Countries []string       `json:"countries"`
	Languages []string       `json:"languages"`
}

// profileUpdateRequest はプロフィール更新の送信内容。
type profileUpdateRequest struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Country          string              `json:"country"`
	DOB              string              `json:"dob"`
	AnonymousDefault bool                `json:"anonymousDefault"`
	Accessibility    model.Accessibility `json:"accessibility"`
}

// resetRequest はフルリセットの送信内容。確認ダイアログの結果を
// confirmとして受け取る。
type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// resetResponse はフルリセット後のレスポンス。nextは遷移先の初期画面。
type resetResponse struct {
	Next string `json:"next"`
}

// View は設定画面のビューモデルを返す。
// GET /settings
func (h *SettingsHandler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsView{
		View:      "settings",
		Profile:   h.state.Profile(),
		Countries: model.Countries,
		Languages: model.Languages,
	})
}

// UpdateProfile はプロフィールのベース項目を更新する。
// 質問票とコーチ設定は保持される。
// PUT /settings/profile
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	current := h.state.Profile()
	if current == nil {
		writeAPIErrorResponse(w, http.StatusConflict, model.NewProfileRequiredError())
		return
	}

	next := *current
	next.Name = req.Name
	next.Email = req.Email
	next.Country = req.Country
	next.DOB = req.DOB
	next.AnonymousDefault = req.AnonymousDefault
	next.Accessibility = req.Accessibility

	if err := h.state.SetProfile(r.Context(), next); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.state.Profile())
}

// UpdateCoach はコーチ設定を更新する。
// PUT /settings/coach
func (h *SettingsHandler) UpdateCoach(w http.ResponseWriter, r *http.Request) {
	var req coachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	if err := h.state.SetCoach(r.Context(), model.Coach{
		Gender:    req.Gender,
		Country:   req.Country,
		Hair:      req.Hair,
		Language:  req.Language,
		Style:     model.CommStyle(req.Style),
		AvatarURL: req.AvatarURL,
	}); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.state.Profile())
}

// Reset は全データを消去してオンボーディングをやり直す。
// 確認フラグなしのリクエストは拒否する（確認ダイアログ相当）。
// POST /reset
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	if !req.Confirm {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewResetNotConfirmedError())
		return
	}

	if err := h.state.Reset(r.Context()); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{Next: "/"})
}
