package store

import "testing"

// PostgresStoreはStoreインターフェースを満たすことを検証
func TestPostgresStore_ImplementsInterface(t *testing.T) {
	var _ Store = (*PostgresStore)(nil)
}

// NewPostgresStoreが正しく初期化されることを検証
func TestNewPostgresStore_Initializes(t *testing.T) {
	s := NewPostgresStore(nil, nil)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}
