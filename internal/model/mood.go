// Package model はドメインモデルを定義する。
package model

import "time"

// MoodEntry は1回のムードチェックインを表す。
// 追記専用で、記録後の変更・削除はない。
type MoodEntry struct {
	Value     int       `json:"value"` // 1（とても低い）〜5（とても良い）
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"ts"`
}

// MoodMin とMoodMax はムード値の有効範囲。
const (
	MoodMin = 1
	MoodMax = 5
)

// moodLabels はムード値に対応する表示ラベル（値1がインデックス0）。
var moodLabels = []string{"Very low", "Low", "OK", "Good", "Great"}

// IsValidMoodValue はムード値が有効範囲内かどうかを返す。
func IsValidMoodValue(v int) bool {
	return v >= MoodMin && v <= MoodMax
}

// MoodLabel はムード値の表示ラベルを返す。範囲外の値には空文字を返す。
func MoodLabel(v int) string {
	if !IsValidMoodValue(v) {
		return ""
	}
	return moodLabels[v-1]
}
