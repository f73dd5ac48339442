package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return s
}

func TestFileStore_New_CreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := NewFileStore(dir, nil); err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestFileStore_WriteThenRead_RoundTrips(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	value := json.RawMessage(`[{"value":4,"ts":"2026-09-01T10:00:00Z"}]`)
	if err := s.Write(ctx, "moods", value); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, ok, err := s.Read(ctx, "moods")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if string(raw) != string(value) {
		t.Errorf("raw = %s, want %s", raw, value)
	}
}

func TestFileStore_Read_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := s1.Write(ctx, "ui-lang", json.RawMessage(`"Spanish"`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// 同じディレクトリで開き直すと同じ値が読める
	s2, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("NewFileStore (reopen) failed: %v", err)
	}
	raw, ok, err := s2.Read(ctx, "ui-lang")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !ok || string(raw) != `"Spanish"` {
		t.Errorf("raw = %s, ok = %v, want \"Spanish\", true", raw, ok)
	}
}

func TestFileStore_ReadMalformedFile_ReportsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	// JSONとして不正なファイルを直接置く
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, ok, err := s.Read(context.Background(), "profile")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Error("ok = true, want false for malformed content")
	}
}

func TestFileStore_Reset_RemovesAllKeys(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	s.Write(ctx, "profile", json.RawMessage(`{}`))
	s.Write(ctx, "anon-feed", json.RawMessage(`[]`))

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	for _, key := range []string{"profile", "anon-feed"} {
		if _, ok, _ := s.Read(ctx, key); ok {
			t.Errorf("key %q still present after Reset", key)
		}
	}
}

func TestFileStore_InvalidKey_Rejected(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	tests := []string{"", "../escape", "Upper", "a b", "key.json"}
	for _, key := range tests {
		if err := s.Write(ctx, key, json.RawMessage(`{}`)); err == nil {
			t.Errorf("Write(%q): expected error, got nil", key)
		}
		if _, _, err := s.Read(ctx, key); err == nil {
			t.Errorf("Read(%q): expected error, got nil", key)
		}
	}
}

func TestFileStore_Write_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := s.Write(context.Background(), "journal", json.RawMessage(`[]`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
