package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/talk2me/internal/model"
)

// OnboardingState はオンボーディングハンドラーが必要とする状態操作の
// インターフェース。state.Aggregateが実装する。
type OnboardingState interface {
	Profile() *model.Profile
	SetProfile(ctx context.Context, p model.Profile) error
	SetQuestionnaire(ctx context.Context, q model.Questionnaire) error
	SetCoach(ctx context.Context, c model.Coach) error
}

// OnboardingHandler はサインアップと2つのオンボーディングステップの
// HTTPハンドラー。各遷移はフォーム送信の成功にゲートされ、プロフィール
// の部分的な変更を引き起こす。
type OnboardingHandler struct {
	state OnboardingState
}

// NewOnboardingHandler はOnboardingHandlerを生成する。
func NewOnboardingHandler(state OnboardingState) *OnboardingHandler {
	return &OnboardingHandler{state: state}
}

// --- リクエスト/レスポンス型 ---

// signUpRequest はサインアップフォームの送信内容。
type signUpRequest struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Country          string              `json:"country"`
	DOB              string              `json:"dob"`
	AnonymousDefault bool                `json:"anonymousDefault"`
	Accessibility    model.Accessibility `json:"accessibility"`
}

// questionnaireRequest は質問票フォームの送信内容。
type questionnaireRequest struct {
	EmotionalHistory string   `json:"emotionalHistory"`
	StressLevel      string   `json:"stressLevel"`
	CopingPrefs      []string `json:"copingPrefs"`
	CommStyle        string   `json:"communicationStyle"`
}

// coachRequest はコーチ選択フォームの送信内容。
type coachRequest struct {
	Gender    string `json:"gender"`
	Country   string `json:"country"`
	Hair      string `json:"hair"`
	Language  string `json:"language"`
	Style     string `json:"style"`
	AvatarURL string `json:"avatarUrl"`
}

// transitionResponse はオンボーディング遷移のレスポンス。
// nextは遷移先のルート。
type transitionResponse struct {
	Next    string         `json:"next"`
	Profile *model.Profile `json:"profile"`
}

// signUpView はサインアップフォームのビューモデル。
type signUpView struct {
	View      string         `json:"view"`
	Countries []string       `json:"countries"`
	Draft     *model.Profile `json:"draft,omitempty"`
}

// questionnaireView は質問票フォームのビューモデル。
type questionnaireView struct {
	View         string               `json:"view"`
	StressLevels []string             `json:"stressLevels"`
	CopingPrefs  []string             `json:"copingPrefs"`
	CommStyles   []string             `json:"commStyles"`
	Draft        *model.Questionnaire `json:"draft,omitempty"`
}

// coachView はコーチ選択フォームのビューモデル。
type coachView struct {
	View       string       `json:"view"`
	Countries  []string     `json:"countries"`
	Languages  []string     `json:"languages"`
	CommStyles []string     `json:"commStyles"`
	Draft      *model.Coach `json:"draft,omitempty"`
}

// stressLevelOptions とcommStyleOptions はフォームの選択肢。
var (
	stressLevelOptions = []string{"Low", "Medium", "High", "Very high"}
	commStyleOptions   = []string{"Gentle", "Direct", "Encouraging", "Humorous"}
)

// SignUpView はサインアップフォームのビューモデルを返す。
// GET / （プロフィール不在時）
func (h *OnboardingHandler) SignUpView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, signUpView{
		View:      "signup",
		Countries: model.Countries,
		Draft:     h.state.Profile(),
	})
}

// SignUp はサインアップフォームを処理し、ベースプロフィールを作成する。
// 再サインアップの場合は既存の質問票・コーチ設定を保持する。
// POST /signup
func (h *OnboardingHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	p := model.Profile{
		Name:             req.Name,
		Email:            req.Email,
		Country:          req.Country,
		DOB:              req.DOB,
		AnonymousDefault: req.AnonymousDefault,
		Accessibility:    req.Accessibility,
	}
	if p.Country == "" {
		p.Country = "Colombia"
	}
	if existing := h.state.Profile(); existing != nil {
		p.Questionnaire = existing.Questionnaire
		p.Coach = existing.Coach
	}

	if err := h.state.SetProfile(r.Context(), p); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{
		Next:    "/onboarding/questionnaire",
		Profile: h.state.Profile(),
	})
}

// QuestionnaireView は質問票フォームのビューモデルを返す。
// GET /onboarding/questionnaire
func (h *OnboardingHandler) QuestionnaireView(w http.ResponseWriter, r *http.Request) {
	view := questionnaireView{
		View:         "questionnaire",
		StressLevels: stressLevelOptions,
		CopingPrefs:  model.CopingPrefs,
		CommStyles:   commStyleOptions,
	}
	if p := h.state.Profile(); p != nil {
		view.Draft = p.Questionnaire
	}
	writeJSON(w, http.StatusOK, view)
}

// Questionnaire は質問票フォームを処理し、プロフィールに埋め込む。
// POST /onboarding/questionnaire
func (h *OnboardingHandler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	var req questionnaireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	q := model.Questionnaire{
		EmotionalHistory: req.EmotionalHistory,
		StressLevel:      model.StressLevel(req.StressLevel),
		CopingPrefs:      req.CopingPrefs,
		CommStyle:        model.CommStyle(req.CommStyle),
	}
	if q.StressLevel == "" {
		q.StressLevel = model.StressMedium
	}
	if q.CommStyle == "" {
		q.CommStyle = model.StyleGentle
	}

	if err := h.state.SetQuestionnaire(r.Context(), q); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{
		Next:    "/onboarding/coach",
		Profile: h.state.Profile(),
	})
}

// CoachView はコーチ選択フォームのビューモデルを返す。
// GET /onboarding/coach
func (h *OnboardingHandler) CoachView(w http.ResponseWriter, r *http.Request) {
	view := coachView{
		View:       "coach-picker",
		Countries:  model.Countries,
		Languages:  model.Languages,
		CommStyles: commStyleOptions,
	}
	if p := h.state.Profile(); p != nil {
		view.Draft = p.Coach
	}
	writeJSON(w, http.StatusOK, view)
}

// Coach はコーチ選択フォームを処理し、プロフィールに埋め込む。
// 送信後はオンボーディング完了となりホームへ遷移する。
// POST /onboarding/coach
func (h *OnboardingHandler) Coach(w http.ResponseWriter, r *http.Request) {
	var req coachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}

	c := model.Coach{
		Gender:    req.Gender,
		Country:   req.Country,
		Hair:      req.Hair,
		Language:  req.Language,
		Style:     model.CommStyle(req.Style),
		AvatarURL: req.AvatarURL,
	}

	// 未指定項目は参照実装のフォーム初期値で補完する
	if c.Gender == "" {
		c.Gender = "Female"
	}
	if c.Hair == "" {
		c.Hair = "Straight"
	}
	if c.Language == "" {
		c.Language = model.DefaultLanguage
	}
	p := h.state.Profile()
	if c.Country == "" {
		c.Country = "Colombia"
		if p != nil && p.Country != "" {
			c.Country = p.Country
		}
	}
	if c.Style == "" {
		c.Style = model.StyleGentle
		if p != nil && p.Questionnaire != nil {
			c.Style = p.Questionnaire.CommStyle
		}
	}

	if err := h.state.SetCoach(r.Context(), c); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transitionResponse{
		Next:    "/home",
		Profile: h.state.Profile(),
	})
}
