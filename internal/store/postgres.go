package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// PostgresStore はapp_stateテーブル（key→jsonb）を背後に持つStore実装。
// スキーマはdatabaseパッケージのマイグレーションで管理される。
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStore はPostgresStoreを生成する。
func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

// Read はキーに対応するJSON値を返す。行が存在しない場合はok=false。
// jsonbカラムのため破損値はDB側で弾かれるが、念のため検証してから返す。
func (s *PostgresStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = $1`, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read app_state key %q: %w", key, err)
	}

	if !json.Valid(raw) {
		s.logger.Warn("discarding malformed persisted value",
			slog.String("key", key),
		)
		return nil, false, nil
	}

	return json.RawMessage(raw), true, nil
}

// Write は値をUPSERTで永続化する。
func (s *PostgresStore) Write(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, []byte(value),
	)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Reset は全キーを削除する。
func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state`); err != nil {
		return fmt.Errorf("failed to reset app_state: %w", err)
	}
	return nil
}
