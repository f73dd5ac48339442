package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore はマップを背後に持つ揮発性のStore実装。
// テストおよび永続化なしで起動するephemeralモードで使用する。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage

	// WriteErr が設定されている場合、Writeは常にこのエラーを返す。
	// 書き込み失敗パスのテスト用。
	WriteErr error
}

// NewMemoryStore は空のMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]json.RawMessage)}
}

// Read はキーに対応する値を返す。存在しない場合はok=false。
func (s *MemoryStore) Read(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}

	// 呼び出し側の変更から守るためコピーを返す
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

// Write は値をキーに格納する。
func (s *MemoryStore) Write(_ context.Context, key string, value json.RawMessage) error {
	if s.WriteErr != nil {
		return &WriteError{Key: key, Err: s.WriteErr}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

// Reset は全キーを削除する。
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]json.RawMessage)
	return nil
}

// Seed はテスト用に生のバイト列をキーへ直接格納する。
// 破損データの再現に使用する。
func (s *MemoryStore) Seed(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = json.RawMessage(raw)
}
