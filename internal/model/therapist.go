// Package model はドメインモデルを定義する。
package model

// Therapist はセラピスト紹介リストの1件を表す。
// リストは固定データで、永続化対象ではない。
type Therapist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Email     string `json:"email"`
}
