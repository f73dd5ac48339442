// Package store は永続キーバリューストアの抽象と実装を提供する。
//
// 各キーにはJSONエンコード済みの値が1つ格納される。Readは欠損・破損を
// エラーではなく「不在」として報告し、デフォルト値の代入は呼び出し側の
// 責務とする。Writeの失敗は呼び出し側へ返すが、セッションを止めない
// （メモリ上の値で継続する）ことを想定している。
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store は永続キーバリューストアのインターフェース。
// Application State Aggregateのコンストラクタに注入され、
// アンビエントなグローバルとしては決してアクセスされない。
type Store interface {
	// Read はキーに対応するJSON値を返す。
	// キーが存在しない、または内容が破損している場合は ok=false を返し、
	// エラーにはしない。I/O自体の失敗のみerrorを返す。
	Read(ctx context.Context, key string) (raw json.RawMessage, ok bool, err error)

	// Write はJSON値をキーに対して永続化する。
	// 失敗（容量超過など）は*WriteErrorとして返すが、呼び出し側は
	// ログに記録してメモリ上の値で継続することが期待される。
	Write(ctx context.Context, key string, value json.RawMessage) error

	// Reset は全キーを削除し、ストアを初期状態に戻す。
	Reset(ctx context.Context) error
}

// WriteError は書き込み失敗を表す。キー単位の永続化喪失であり、
// アプリケーションの可用性には影響しない。
type WriteError struct {
	Key string
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *WriteError) Error() string {
	return fmt.Sprintf("store write failed for key %q: %v", e.Key, e.Err)
}

// Unwrap は原因エラーを返す。
func (e *WriteError) Unwrap() error {
	return e.Err
}
