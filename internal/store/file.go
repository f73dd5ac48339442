package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStore はデータディレクトリ配下にキーごとの1ファイルとして
// JSON値を保存するStore実装。ブラウザのローカルストレージに相当する
// デフォルトのバックエンド。
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore はFileStoreを生成する。データディレクトリが存在しない
// 場合は作成する。
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Read はキーに対応するファイルを読み込む。
// ファイルが存在しない、またはJSONとして不正な場合はok=falseを返す。
func (s *FileStore) Read(_ context.Context, key string) (json.RawMessage, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// 破損した内容は「不在」として扱う。呼び出し側がデフォルト値で復旧する。
	if !json.Valid(raw) {
		s.logger.Warn("discarding malformed persisted value",
			slog.String("key", key),
		)
		return nil, false, nil
	}

	return json.RawMessage(raw), true, nil
}

// Write は値を一時ファイルに書いてからリネームすることで原子的に保存する。
func (s *FileStore) Write(_ context.Context, key string, value json.RawMessage) error {
	path, err := s.path(key)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &WriteError{Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Key: key, Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Key: key, Err: err}
	}

	return nil
}

// Reset はデータディレクトリ内のすべてのキーのファイルを削除する。
func (s *FileStore) Reset(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to list data directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}

	return nil
}

// path はキーからファイルパスを導出する。パストラバーサルを防ぐため
// 英小文字・数字・ハイフン以外を含むキーは拒否する。
func (s *FileStore) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty store key")
	}
	for _, r := range key {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return "", fmt.Errorf("invalid store key: %q", key)
		}
	}
	return filepath.Join(s.dir, key+".json"), nil
}
