package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hitoshi/talk2me/internal/store"
)

func TestNewField_MissingKey_AdoptsDefaultAndWritesThrough(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	f := NewField(ctx, st, "ui-lang", "English", nil)

	if got := f.Get(); got != "English" {
		t.Errorf("Get() = %q, want %q", got, "English")
	}

	// デフォルト値はマウント時の状態としてストアへ書き込まれる
	raw, ok, _ := st.Read(ctx, "ui-lang")
	if !ok {
		t.Fatal("default not written through")
	}
	if string(raw) != `"English"` {
		t.Errorf("persisted = %s, want %q", raw, `"English"`)
	}
}

func TestNewField_ExistingValue_Rehydrates(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	st.Write(ctx, "manual-offline", json.RawMessage(`true`))

	f := NewField(ctx, st, "manual-offline", false, nil)
	if got := f.Get(); got != true {
		t.Errorf("Get() = %v, want true", got)
	}
}

func TestNewField_MalformedValue_FallsBackToDefault(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	// 期待する形（配列）に合わない内容をシードする
	st.Seed("moods", []byte(`{"not":"an array"}`))

	f := NewField(ctx, st, "moods", []int{}, nil)
	if got := f.Get(); len(got) != 0 {
		t.Errorf("Get() = %v, want empty default", got)
	}
}

func TestField_Set_WritesThroughImmediately(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	f := NewField(ctx, st, "ui-lang", "English", nil)
	if err := f.Set(ctx, "Hindi"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, ok, _ := st.Read(ctx, "ui-lang")
	if !ok || string(raw) != `"Hindi"` {
		t.Errorf("persisted = %s, want %q", raw, `"Hindi"`)
	}
}

func TestField_Set_WriteFailureKeepsMemoryValue(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	f := NewField(ctx, st, "ui-lang", "English", nil)

	st.WriteErr = errors.New("disk full")
	err := f.Set(ctx, "Arabic")

	var writeErr *store.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *store.WriteError, got %v", err)
	}

	// 書き込みが失敗してもメモリ上の値は更新済みでセッションは継続する
	if got := f.Get(); got != "Arabic" {
		t.Errorf("Get() = %q, want %q after failed write", got, "Arabic")
	}
}
