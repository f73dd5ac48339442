package handler

import (
	"net/http"
	"testing"
)

func TestHome_RecentMoods_NewestFirstCappedAtFive(t *testing.T) {
	router := newTestRouter(t, newTestState(t))
	completeOnboarding(t, router)

	for _, v := range []int{1, 2, 3, 4, 5, 4, 3} {
		w := doJSON(t, router, http.MethodPost, "/moods", map[string]any{"value": v})
		if w.Code != http.StatusCreated {
			t.Fatalf("POST /moods: status = %d\n%s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodGet, "/home", nil)
	var view struct {
		RecentMoods []struct {
			Value int    `json:"value"`
			Label string `json:"label"`
		} `json:"recentMoods"`
		DailyReads    []string `json:"dailyReads"`
		Notifications []string `json:"notifications"`
	}
	decodeJSON(t, w, &view)

	if len(view.RecentMoods) != 5 {
		t.Fatalf("len(recentMoods) = %d, want 5", len(view.RecentMoods))
	}
	// 直近5件が新しい順
	wantValues := []int{3, 4, 5, 4, 3}
	for i, want := range wantValues {
		if view.RecentMoods[i].Value != want {
			t.Errorf("recentMoods[%d].Value = %d, want %d", i, view.RecentMoods[i].Value, want)
		}
	}
	if view.RecentMoods[0].Label != "OK" {
		t.Errorf("recentMoods[0].Label = %q, want OK", view.RecentMoods[0].Label)
	}

	if len(view.DailyReads) != 4 {
		t.Errorf("len(dailyReads) = %d, want 4", len(view.DailyReads))
	}
	if len(view.Notifications) != 2 {
		t.Errorf("len(notifications) = %d, want 2", len(view.Notifications))
	}
}

func TestAddMood_OutOfRange_Returns400(t *testing.T) {
	router := newTestRouter(t, newTestState(t))
	completeOnboarding(t, router)

	for _, v := range []int{0, 6, -1} {
		w := doJSON(t, router, http.MethodPost, "/moods", map[string]any{"value": v})
		if w.Code != http.StatusBadRequest {
			t.Errorf("POST /moods value=%d: status = %d, want %d", v, w.Code, http.StatusBadRequest)
		}

		var errResp struct {
			Code string `json:"code"`
		}
		decodeJSON(t, w, &errResp)
		if errResp.Code != "INVALID_MOOD_VALUE" {
			t.Errorf("code = %q, want INVALID_MOOD_VALUE", errResp.Code)
		}
	}
}

func TestAddMood_WithNote_Returns201(t *testing.T) {
	router := newTestRouter(t, newTestState(t))
	completeOnboarding(t, router)

	w := doJSON(t, router, http.MethodPost, "/moods", map[string]any{
		"value": 4,
		"note":  "after the walk",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}

	var resp struct {
		Value int    `json:"value"`
		Label string `json:"label"`
		Note  string `json:"note"`
	}
	decodeJSON(t, w, &resp)

	if resp.Value != 4 || resp.Label != "Good" || resp.Note != "after the walk" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSetOffline_TogglesFlag(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)
	completeOnboarding(t, router)

	w := doJSON(t, router, http.MethodPut, "/offline", map[string]any{"offline": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	if !st.ManualOffline() {
		t.Error("offline flag not set")
	}

	w = doJSON(t, router, http.MethodGet, "/home", nil)
	var view struct {
		ManualOffline bool `json:"manualOffline"`
	}
	decodeJSON(t, w, &view)
	if !view.ManualOffline {
		t.Error("home view does not reflect offline flag")
	}
}

func TestSetLanguage_UnsupportedLanguage_Returns400(t *testing.T) {
	router := newTestRouter(t, newTestState(t))
	completeOnboarding(t, router)

	w := doJSON(t, router, http.MethodPut, "/language", map[string]any{"language": "Portuguese"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSetLanguage_SupportedLanguage_Persists(t *testing.T) {
	st := newTestState(t)
	router := newTestRouter(t, st)
	completeOnboarding(t, router)

	w := doJSON(t, router, http.MethodPut, "/language", map[string]any{"language": "Hindi"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", w.Code, w.Body.String())
	}
	if got := st.UILanguage(); got != "Hindi" {
		t.Errorf("UILanguage() = %q, want Hindi", got)
	}
}
