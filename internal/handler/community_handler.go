package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/talk2me/internal/model"
)

// CommunityState はコミュニティハンドラーが必要とする状態操作の
// インターフェース。
type CommunityState interface {
	Profile() *model.Profile
	Circles() []model.Circle
	FindCircle(id string) *model.Circle
	ToggleCircle(ctx context.Context, id string) *model.Circle
	Feed() []model.FeedPost
	AddFeedPost(ctx context.Context, text string, anonymous bool) (model.FeedPost, error)
}

// CommunityHandler はコミュニティ一覧・詳細と匿名壁のHTTPハンドラー。
type CommunityHandler struct {
	state CommunityState
}

// NewCommunityHandler はCommunityHandlerを生成する。
func NewCommunityHandler(state CommunityState) *CommunityHandler {
	return &CommunityHandler{state: state}
}

// communityView はコミュニティ画面のビューモデル。
type communityView struct {
	View        string           `json:"view"`
	Circles     []model.Circle   `json:"circles"`
	Feed        []model.FeedPost `json:"feed"`
	DefaultAnon bool             `json:"defaultAnon"`
}

// circleDetailView はコミュニティ詳細のビューモデル。
type circleDetailView struct {
	View   string       `json:"view"`
	Circle model.Circle `json:"circle"`
}

// postRequest は壁投稿の送信内容。anonymous未指定の場合は
// プロフィールのデフォルトに従う。
type postRequest struct {
	Text      string `json:"text"`
	Anonymous *bool  `json:"anonymous,omitempty"`
}

// View はコミュニティ一覧と匿名壁のビューモデルを返す。
// GET /community
func (h *CommunityHandler) View(w http.ResponseWriter, r *http.Request) {
	defaultAnon := true
	if p := h.state.Profile(); p != nil {
		defaultAnon = p.AnonymousDefault
	}

	writeJSON(w, http.StatusOK, communityView{
		View:        "community",
		Circles:     h.state.Circles(),
		Feed:        h.state.Feed(),
		DefaultAnon: defaultAnon,
	})
}

// Detail はコミュニティ詳細のビューモデルを返す。
// GET /community/{id}
func (h *CommunityHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c := h.state.FindCircle(id)
	if c == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewCircleNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, circleDetailView{
		View:   "community-detail",
		Circle: *c,
	})
}

// ToggleMembership はコミュニティの参加状態を反転する。
// POST /community/{id}/membership
func (h *CommunityHandler) ToggleMembership(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c := h.state.ToggleCircle(r.Context(), id)
	if c == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewCircleNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// AddPost は匿名壁へ投稿する。テキストはモデレーション済みの形で
// 保存・返却される。
// POST /community/posts
func (h *CommunityHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	anonymous := true
	if req.Anonymous != nil {
		anonymous = *req.Anonymous
	} else if p := h.state.Profile(); p != nil {
		anonymous = p.AnonymousDefault
	}

	post, err := h.state.AddFeedPost(r.Context(), req.Text, anonymous)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
