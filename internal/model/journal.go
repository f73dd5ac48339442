// Package model はドメインモデルを定義する。
package model

import "time"

// JournalEntry は1件の自由記述ジャーナルを表す。
// 追記専用で、保存後は読み取り専用となる。
type JournalEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Text      string    `json:"text"`
}
