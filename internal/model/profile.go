// Package model はドメインモデルを定義する。
package model

// Countries はサインアップ時に選択できる出身国の一覧。
var Countries = []string{
	"India", "China", "Colombia", "Mexico", "Brazil",
	"Nigeria", "Pakistan", "Bangladesh", "Vietnam", "South Korea",
	"Japan", "Indonesia", "Egypt", "Germany", "France",
}

// Languages はUIおよびコーチが対応する言語の一覧。
var Languages = []string{"English", "Spanish", "Hindi", "Mandarin", "Arabic"}

// DefaultLanguage はUI言語のデフォルト値。
const DefaultLanguage = "English"

// IsSupportedLanguage は言語がサポート対象かどうかを返す。
func IsSupportedLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// StressLevel は自己申告のストレスレベルを表す。
type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressMedium   StressLevel = "Medium"
	StressHigh     StressLevel = "High"
	StressVeryHigh StressLevel = "Very high"
)

// IsValid はストレスレベルが定義済みの値かどうかを返す。
func (s StressLevel) IsValid() bool {
	switch s {
	case StressLow, StressMedium, StressHigh, StressVeryHigh:
		return true
	}
	return false
}

// CommStyle はコーチのコミュニケーションスタイルを表す。
type CommStyle string

const (
	StyleGentle      CommStyle = "Gentle"
	StyleDirect      CommStyle = "Direct"
	StyleEncouraging CommStyle = "Encouraging"
	StyleHumorous    CommStyle = "Humorous"
)

// IsValid はコミュニケーションスタイルが定義済みの値かどうかを返す。
func (c CommStyle) IsValid() bool {
	switch c {
	case StyleGentle, StyleDirect, StyleEncouraging, StyleHumorous:
		return true
	}
	return false
}

// CopingPrefs は質問票で選択できるコーピング手段の一覧。
var CopingPrefs = []string{
	"Journaling", "Breathing", "Walking", "Music",
	"Calling Family/Friends", "Prayer/Meditation", "Exercise",
}

// Accessibility はアクセシビリティ設定のフラグ群。
type Accessibility struct {
	LargeText     bool `json:"largeText"`
	HighContrast  bool `json:"highContrast"`
	ReducedMotion bool `json:"reducedMotion"`
}

// Questionnaire はオンボーディング時の自己申告ウェルネス情報を表す。
// プロフィールに埋め込まれ、作成後は設定画面から更新される。
type Questionnaire struct {
	EmotionalHistory string      `json:"emotionalHistory"`
	StressLevel      StressLevel `json:"stressLevel"`
	CopingPrefs      []string    `json:"copingPrefs"`
	CommStyle        CommStyle   `json:"communicationStyle"`
}

// Coach はスクリプト型アシスタントのペルソナ設定を表す。
type Coach struct {
	Gender    string    `json:"gender"`
	Country   string    `json:"country"`
	Hair      string    `json:"hair"`
	Language  string    `json:"language"`
	Style     CommStyle `json:"style"`
	AvatarURL string    `json:"avatarUrl"`
}

// Profile はユーザーのアイデンティティと設定を表す。
// オンボーディング完了後はQuestionnaireとCoachの両方が埋まる。
// JSONタグは永続化レイアウト（profileキー）と一致させる。
type Profile struct {
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Country          string         `json:"country"`
	DOB              string         `json:"dob"`
	AnonymousDefault bool           `json:"anonymousDefault"`
	Accessibility    Accessibility  `json:"accessibility"`
	Questionnaire    *Questionnaire `json:"questionnaire,omitempty"`
	Coach            *Coach         `json:"coach,omitempty"`
}

// Onboarded はオンボーディング3ステップがすべて完了しているかどうかを返す。
func (p *Profile) Onboarded() bool {
	return p != nil && p.Questionnaire != nil && p.Coach != nil
}
