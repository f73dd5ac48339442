package handler

import (
	"net/http"
	"testing"
)

func TestQuestionnaireView_ListsOptions(t *testing.T) {
	router := newTestRouter(t, newTestState(t))

	w := doJSON(t, router, http.MethodGet, "/onboarding/questionnaire", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var view struct {
		View         string   `json:"view"`
		StressLevels []string `json:"stressLevels"`
		CopingPrefs  []string `json:"copingPrefs"`
		CommStyles   []string `json:"commStyles"`
	}
	decodeJSON(t, w, &view)

	if view.View != "questionnaire" {
		t.Errorf("view = %q, want questionnaire", view.View)
	}
	if len(view.StressLevels) != 4 || len(view.CommStyles) != 4 {
		t.Errorf("options = %v / %v", view.StressLevels, view.CommStyles)
	}
	if len(view.CopingPrefs) == 0 {
		t.Error("copingPrefs list is empty")
	}
}

func TestQuestionnaire_EmptyEnums_DefaultToMediumGentle(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)

	doJSON(t, router, http.MethodPost, "/signup", map[string]any{
		"name":  "Ana",
		"email": "ana@example.com",
	})

	w := doJSON(t, router, http.MethodPost, "/onboarding/questionnaire", map[string]any{
		"emotionalHistory": "first year abroad",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	q := st.Profile().Questionnaire
	if q == nil {
		t.Fatal("questionnaire not embedded")
	}
	if string(q.StressLevel) != "Medium" || string(q.CommStyle) != "Gentle" {
		t.Errorf("defaults = %q/%q, want Medium/Gentle", q.StressLevel, q.CommStyle)
	}
	if q.EmotionalHistory != "first year abroad" {
		t.Errorf("emotionalHistory = %q", q.EmotionalHistory)
	}
}

func TestCoach_EmptyFields_DerivedFromProfile(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)

	doJSON(t, router, http.MethodPost, "/signup", map[string]any{
		"name":    "Ana",
		"email":   "ana@example.com",
		"country": "Mexico",
	})
	doJSON(t, router, http.MethodPost, "/onboarding/questionnaire", map[string]any{
		"stressLevel":        "High",
		"communicationStyle": "Direct",
	})

	// 全項目未指定でもプロフィール由来の初期値で補完される
	w := doJSON(t, router, http.MethodPost, "/onboarding/coach", map[string]any{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	c := st.Profile().Coach
	if c == nil {
		t.Fatal("coach not embedded")
	}
	if c.Country != "Mexico" {
		t.Errorf("coach country = %q, want profile country Mexico", c.Country)
	}
	if string(c.Style) != "Direct" {
		t.Errorf("coach style = %q, want questionnaire style Direct", c.Style)
	}
	if c.Gender != "Female" || c.Hair != "Straight" || c.Language != "English" {
		t.Errorf("form defaults = %q/%q/%q", c.Gender, c.Hair, c.Language)
	}
}

func TestSignUp_DefaultCountry_Colombia(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)

	w := doJSON(t, router, http.MethodPost, "/signup", map[string]any{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	if got := st.Profile().Country; got != "Colombia" {
		t.Errorf("country = %q, want form default Colombia", got)
	}
}

func TestSignUp_ResignUp_KeepsOnboardingResults(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)
	completeOnboarding(t, router)

	// 名前を変えて再サインアップしても質問票とコーチ設定は残る
	w := doJSON(t, router, http.MethodPost, "/signup", map[string]any{
		"name":  "Ana María",
		"email": "ana@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	p := st.Profile()
	if p.Name != "Ana María" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Questionnaire == nil || p.Coach == nil {
		t.Error("onboarding results lost on re-sign-up")
	}
}
