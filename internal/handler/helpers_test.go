package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/talk2me/internal/coach"
	"github.com/hitoshi/talk2me/internal/security"
	"github.com/hitoshi/talk2me/internal/state"
	"github.com/hitoshi/talk2me/internal/store"
)

// newTestState は実ストア（メモリ）上のAggregateを返す。
func newTestState(t *testing.T) *state.Aggregate {
	t.Helper()
	return state.NewAggregate(context.Background(), store.NewMemoryStore(), state.AggregateConfig{
		Filter: security.NewContentFilter(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// newTestRouter は全ルートとミドルウェアを構成したルーターを返す。
// レート制限とメトリクスは外したまま構成する。
func newTestRouter(t *testing.T, st *state.Aggregate) http.Handler {
	t.Helper()
	return NewRouter(&RouterDeps{
		State:  st,
		Chat:   coach.NewService(st, nil),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// doJSON はJSONボディ付きのリクエストを実行してレコーダーを返す。
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decodeJSON はレスポンスボディをデコードする。
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
}

// completeOnboarding はサインアップから3ステップを通してホームへ到達させる。
func completeOnboarding(t *testing.T, router http.Handler) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/signup", map[string]any{
		"name":             "Ana",
		"email":            "ana@example.com",
		"country":          "Colombia",
		"anonymousDefault": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup: status = %d\n%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/onboarding/questionnaire", map[string]any{
		"stressLevel":        "High",
		"copingPrefs":        []string{"Walking"},
		"communicationStyle": "Gentle",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("questionnaire: status = %d\n%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/onboarding/coach", map[string]any{
		"language": "English",
		"style":    "Gentle",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("coach: status = %d\n%s", w.Code, w.Body.String())
	}
}
