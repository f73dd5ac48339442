package therapist

import (
	"fmt"
	"strings"

	"github.com/hitoshi/talk2me/internal/model"
)

// excerptLimit は直近ジャーナルの抜粋に含める最大文字数（rune単位）。
const excerptLimit = 120

// BuildSummary はセラピストと共有するためのプレーンテキストレポートを
// 生成する純粋関数。ムード傾向（最頻値と直近の推移）、ジャーナルの
// 件数と直近の抜粋、プロフィール由来の文脈（出身国・ストレスレベル・
// コーピング手段）をまとめる。同一入力に対して常に同一の出力を返す。
func BuildSummary(profile *model.Profile, moods []model.MoodEntry, entries []model.JournalEntry) string {
	var b strings.Builder

	b.WriteString("Talk2Me Therapist Summary\n")
	b.WriteString("=========================\n\n")

	writeProfileSection(&b, profile)
	writeMoodSection(&b, moods)
	writeJournalSection(&b, entries)

	b.WriteString("Generated by Talk2Me. Scripted summary of self-reported data; not a clinical assessment.\n")
	return b.String()
}

// writeProfileSection はプロフィール由来の文脈を書き出す。
func writeProfileSection(b *strings.Builder, profile *model.Profile) {
	name, country := "Not provided", "Not provided"
	stress, coping, style := "Not provided", "Not provided", "Not provided"

	if profile != nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Country != "" {
			country = profile.Country
		}
		if q := profile.Questionnaire; q != nil {
			stress = string(q.StressLevel)
			if len(q.CopingPrefs) > 0 {
				coping = strings.Join(q.CopingPrefs, ", ")
			}
			style = string(q.CommStyle)
		}
	}

	fmt.Fprintf(b, "Name: %s\n", name)
	fmt.Fprintf(b, "Country: %s\n", country)
	fmt.Fprintf(b, "Stress level: %s\n", stress)
	fmt.Fprintf(b, "Coping preferences: %s\n", coping)
	fmt.Fprintf(b, "Communication style: %s\n\n", style)
}

// writeMoodSection はムード傾向を書き出す。
func writeMoodSection(b *strings.Builder, moods []model.MoodEntry) {
	fmt.Fprintf(b, "Mood check-ins: %d\n", len(moods))
	if len(moods) == 0 {
		b.WriteString("\n")
		return
	}

	most := mostFrequentMood(moods)
	fmt.Fprintf(b, "Most frequent mood: %s (%d/5)\n", model.MoodLabel(most), most)
	fmt.Fprintf(b, "Recent trajectory: %s\n\n", trajectory(moods))
}

// writeJournalSection はジャーナルの件数と直近の抜粋を書き出す。
func writeJournalSection(b *strings.Builder, entries []model.JournalEntry) {
	fmt.Fprintf(b, "Journal entries: %d\n", len(entries))
	if len(entries) == 0 {
		b.WriteString("\n")
		return
	}

	latest := entries[len(entries)-1]
	fmt.Fprintf(b, "Most recent entry (excerpt): %q\n\n", excerpt(latest.Text))
}

// mostFrequentMood は最頻のムード値を返す。同数の場合は低い値を優先する
// （出力の決定性のため）。
func mostFrequentMood(moods []model.MoodEntry) int {
	var counts [model.MoodMax + 1]int
	for _, m := range moods {
		if model.IsValidMoodValue(m.Value) {
			counts[m.Value]++
		}
	}

	best, bestCount := model.MoodMin, -1
	for v := model.MoodMin; v <= model.MoodMax; v++ {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// trajectory は直近3件の平均とそれ以前の平均を比較して推移ラベルを返す。
func trajectory(moods []model.MoodEntry) string {
	recentN := 3
	if len(moods) < recentN {
		recentN = len(moods)
	}
	prior := moods[:len(moods)-recentN]
	if len(prior) == 0 {
		return "not enough data"
	}

	diff := average(moods[len(moods)-recentN:]) - average(prior)
	switch {
	case diff > 0.5:
		return "improving"
	case diff < -0.5:
		return "declining"
	default:
		return "steady"
	}
}

// average はムード値の算術平均を返す。
func average(moods []model.MoodEntry) float64 {
	if len(moods) == 0 {
		return 0
	}
	sum := 0
	for _, m := range moods {
		sum += m.Value
	}
	return float64(sum) / float64(len(moods))
}

// excerpt はテキストの先頭excerptLimit文字を返す。超過分は省略記号で示す。
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "…"
}

// ExportFilename はサマリーのダウンロードファイル名を返す。
// プロフィール名の空白はアンダースコアに置き換える。
func ExportFilename(profile *model.Profile) string {
	name := "student"
	if profile != nil && strings.TrimSpace(profile.Name) != "" {
		name = strings.Join(strings.Fields(profile.Name), "_")
	}
	return fmt.Sprintf("Talk2Me_Summary_%s.txt", name)
}
