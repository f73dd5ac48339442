// Package model はドメインモデルを定義する。
package model

import "time"

// Circle はピアグループ（コミュニティ）を表す。
type Circle struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Joined bool   `json:"joined"`
}

// DefaultCircles は初回起動時にシードされるコミュニティ一覧を返す。
// 呼び出しごとに新しいスライスを返すため、呼び出し側が変更してもシードは汚れない。
func DefaultCircles() []Circle {
	return []Circle{
		{ID: "c1", Name: "First-year CS – International", Joined: true},
		{ID: "c2", Name: "Women in STEM (Grad)", Joined: true},
		{ID: "c3", Name: "Mindful Mondays – Short Breaths", Joined: false},
	}
}

// FeedPost は匿名壁への投稿1件を表す。
// Textは常にモデレーション済みの形で保持される。未処理の入力は永続化しない。
type FeedPost struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Author    string    `json:"who"` // "Anonymous" または表示名
	Text      string    `json:"text"`
}

// AnonymousAuthor は匿名投稿時の表示名。
const AnonymousAuthor = "Anonymous"
