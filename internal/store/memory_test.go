package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMemoryStore_ReadMissingKey_ReturnsNotOK(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Read(context.Background(), "profile")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Error("ok = true, want false for missing key")
	}
}

func TestMemoryStore_WriteThenRead_RoundTrips(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	value := json.RawMessage(`{"name":"Ana"}`)
	if err := s.Write(ctx, "profile", value); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, ok, err := s.Read(ctx, "profile")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if string(raw) != `{"name":"Ana"}` {
		t.Errorf("raw = %s, want %s", raw, value)
	}
}

func TestMemoryStore_Read_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "ui-lang", json.RawMessage(`"English"`))

	raw, _, _ := s.Read(ctx, "ui-lang")
	// 呼び出し側がバッファを書き換えても格納値は汚れない
	raw[1] = 'X'

	again, _, _ := s.Read(ctx, "ui-lang")
	if string(again) != `"English"` {
		t.Errorf("stored value mutated: %s", again)
	}
}

func TestMemoryStore_Reset_RemovesAllKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "profile", json.RawMessage(`{}`))
	s.Write(ctx, "moods", json.RawMessage(`[]`))

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	for _, key := range []string{"profile", "moods"} {
		if _, ok, _ := s.Read(ctx, key); ok {
			t.Errorf("key %q still present after Reset", key)
		}
	}
}

func TestMemoryStore_WriteErr_ReturnsWriteError(t *testing.T) {
	s := NewMemoryStore()
	s.WriteErr = errors.New("quota exceeded")

	err := s.Write(context.Background(), "journal", json.RawMessage(`[]`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
	if writeErr.Key != "journal" {
		t.Errorf("Key = %q, want %q", writeErr.Key, "journal")
	}
	if !errors.Is(err, s.WriteErr) {
		t.Error("WriteError does not unwrap to the cause")
	}
}
