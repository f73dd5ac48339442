// Package coach はスクリプト型コーチの会話ロジックを提供する。
//
// 応答は順序付きの（キーワード集合→本文テンプレート）ルール表と
// デフォルト文からなる決定的な文字列変換であり、学習や外部呼び出しは
// 一切行わない。同一の4入力（メッセージ・直近ムード・スタイル・言語）
// に対して常に同一の出力を返す。
package coach

import (
	"strings"

	"github.com/hitoshi/talk2me/internal/model"
)

// replyRule は本文テンプレート1件の選択条件を表す。
// メッセージの小文字形に対する部分一致で判定する。
type replyRule struct {
	template string   // メトリクス用のテンプレート名
	keywords []string // いずれかが含まれれば一致
	body     string
}

// rules は本文テンプレートの順序付きルール表。先に一致したものが勝つ。
var rules = []replyRule{
	{
		template: "immigration",
		keywords: []string{"visa", "opt", "h1b"},
		body:     "Immigration worry is heavy. Pick one controllable step (email ISSS, list docs, 10-min plan).",
	},
	{
		template: "family",
		keywords: []string{"family"},
		body:     "Family pressure mixes with care. Try a boundary script for today.",
	},
}

// defaultTemplate はどのルールにも一致しない場合のテンプレート名。
const defaultTemplate = "grounding"

// defaultBody はどのルールにも一致しない場合の本文。
const defaultBody = "Thanks for sharing. One grounding action, then a 10-minute next step."

// tonePrefixes はコミュニケーションスタイルごとの定型プレフィックス。
var tonePrefixes = map[model.CommStyle]string{
	model.StyleDirect:      "Here's the straight take:",
	model.StyleEncouraging: "You've got this—",
	model.StyleHumorous:    "Tiny joke break 🚀:",
	model.StyleGentle:      "Gently:",
}

// leadIns は言語ごとの導入句。未対応の言語は本文をそのまま使う。
var leadIns = map[string]string{
	"Spanish":  "Un paso pequeño ahora: ",
	"Hindi":    "Ek chhota agla kadam: ",
	"Mandarin": "选择一个小的下一步：",
	"Arabic":   "خطوة صغيرة تالية: ",
}

// selectBody はメッセージに対する本文テンプレートを選択する。
func selectBody(message string) (template, body string) {
	t := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.template, r.body
			}
		}
	}
	return defaultTemplate, defaultBody
}

// TemplateFor はメッセージに適用されるテンプレート名を返す。
// メトリクスのラベル用。
func TemplateFor(message string) string {
	template, _ := selectBody(message)
	return template
}

// Reply はコーチの応答テキストを生成する純粋関数。
// lastMoodは将来のトーン調整用に受け取るが、現在のルール表では
// 応答の選択に影響しない。
func Reply(message string, lastMood int, style model.CommStyle, language string) string {
	_, body := selectBody(message)

	tone, ok := tonePrefixes[style]
	if !ok {
		tone = tonePrefixes[model.StyleGentle]
	}

	if lead, ok := leadIns[language]; ok {
		body = lead + body
	}

	return tone + " " + body
}
