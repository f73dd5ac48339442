// Package security はユーザー投稿テキストの書き込み境界での防護を提供する。
//
// ContentFilter は匿名壁へ保存される前の公開テキストに適用される
// ベストエフォートのマスキングパスである。固定のフラグ語を大文字小文字を
// 区別せずに走査し、各一致を中立の警告マーカーに置き換える。言い換え
// られた有害表現は素通りする（既知の制限）。安全性の保証ではない。
package security

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// warningMarker はフラグ語の置換に使う中立マーカー。
const warningMarker = "⚠️"

// flaggedTerms は走査対象の固定フラグ語セット。順序付きルール表であり、
// 学習は行わない。
var flaggedTerms = regexp.MustCompile(`(?i)(suicide|hate|kill)`)

// ContentFilter はモデレーションパスの実装。
// HTMLの除去（bluemondayの全タグ拒否ポリシー）を先に行い、その後に
// フラグ語のマスキングを適用する。同一入力に対して常に同一出力を返す。
type ContentFilter struct {
	strip *bluemonday.Policy
}

// NewContentFilter はContentFilterを生成する。
func NewContentFilter() *ContentFilter {
	return &ContentFilter{
		// 壁投稿はプレーンテキスト。タグは一切許可しない。
		strip: bluemonday.StrictPolicy(),
	}
}

// Moderate は投稿テキストのモデレーション済み形を返す。
// 戻り値のflaggedはフラグ語が1つ以上マスクされたかどうかを示す。
// 出力はHTMLエスケープ済みとなる（表示層でそのまま埋め込める形）。
func (f *ContentFilter) Moderate(text string) (string, bool) {
	stripped := f.strip.Sanitize(text)
	flagged := flaggedTerms.MatchString(stripped)
	return flaggedTerms.ReplaceAllString(stripped, warningMarker), flagged
}
