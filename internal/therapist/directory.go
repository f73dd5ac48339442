// Package therapist はセラピスト紹介と共有用サマリー生成を提供する。
package therapist

import (
	"strings"

	"github.com/hitoshi/talk2me/internal/model"
)

// directory は固定のセラピスト紹介リスト。デモデータであり永続化しない。
var directory = []model.Therapist{
	{
		ID:        "t1",
		Name:      "Dr. Ana López",
		Specialty: "Cross-cultural counseling",
		Location:  "Austin, TX",
		Email:     "ana@example.com",
	},
	{
		ID:        "t2",
		Name:      "Dr. Sameer Patel",
		Specialty: "Stress & Adjustment",
		Location:  "Austin, TX",
		Email:     "sameer@example.com",
	},
	{
		ID:        "t3",
		Name:      "Casa Esperanza",
		Specialty: "Spanish-speaking support",
		Location:  "Austin, TX",
		Email:     "frontdesk@casa.org",
	},
}

// Search は名前・専門・所在地に対する大文字小文字を区別しない部分一致で
// 紹介リストを絞り込む。空クエリは全件を返す。
func Search(query string) []model.Therapist {
	results := make([]model.Therapist, 0, len(directory))
	q := strings.ToLower(query)
	for _, t := range directory {
		if q == "" || strings.Contains(strings.ToLower(t.Name+t.Specialty+t.Location), q) {
			results = append(results, t)
		}
	}
	return results
}

// Find は指定IDのセラピストを返す。見つからない場合はnil。
func Find(id string) *model.Therapist {
	for _, t := range directory {
		if t.ID == id {
			tc := t
			return &tc
		}
	}
	return nil
}
