// Package state はアプリケーション状態の永続化と集約を提供する。
//
// Field は1つのストアキーとメモリ上の値をロックステップに保つ。
// すべての変更は即座にストアへライトスルーされ、次回起動時には
// 同じキーから再水和される。デバウンスは行わない（1変更=1書き込み）。
package state

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hitoshi/talk2me/internal/store"
)

// Field は1つの名前付きストアスロットに束縛された永続値。
// 同一キーに対するFieldを複数共存させてはならない。キー名前空間の
// 管理はAggregateが担う。
type Field[T any] struct {
	key    string
	store  store.Store
	logger *slog.Logger
	value  T
}

// NewField はストアからの読み込みでFieldを初期化する。
// キーが不在または内容が破損している場合はdefaultValueを採用し、
// マウント時の状態としてライトスルーする。読み書きいずれの失敗も
// 起動を妨げない。
func NewField[T any](ctx context.Context, st store.Store, key string, defaultValue T, logger *slog.Logger) *Field[T] {
	if logger == nil {
		logger = slog.Default()
	}

	f := &Field[T]{
		key:    key,
		store:  st,
		logger: logger,
		value:  defaultValue,
	}

	raw, ok, err := st.Read(ctx, key)
	if err != nil {
		logger.Warn("store read failed, using default",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return f
	}

	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			// 型に合わない内容は破損とみなしてデフォルトへフォールバック
			logger.Warn("persisted value has unexpected shape, using default",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		} else {
			f.value = v
			return f
		}
	}

	// 不在・破損時はデフォルト値を初期状態として永続化する
	if err := f.writeThrough(ctx); err != nil {
		logger.Warn("initial write-through failed, continuing in-memory",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	return f
}

// Get は現在のメモリ上の値を返す。
func (f *Field[T]) Get() T {
	return f.value
}

// Set は値を置き換え、即座にストアへライトスルーする。
// 書き込みに失敗した場合もメモリ上の値は置き換えたまま
// *store.WriteErrorを返す。呼び出し側はログとメトリクスに記録し、
// セッションを継続する。
func (f *Field[T]) Set(ctx context.Context, v T) error {
	f.value = v
	return f.writeThrough(ctx)
}

// Key はこのFieldが束縛されているストアキーを返す。
func (f *Field[T]) Key() string {
	return f.key
}

// writeThrough は現在の値をシリアライズしてストアへ書き込む。
func (f *Field[T]) writeThrough(ctx context.Context) error {
	raw, err := json.Marshal(f.value)
	if err != nil {
		return &store.WriteError{Key: f.key, Err: err}
	}
	return f.store.Write(ctx, f.key, raw)
}
