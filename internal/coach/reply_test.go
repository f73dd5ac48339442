package coach

import (
	"strings"
	"testing"

	"github.com/hitoshi/talk2me/internal/model"
)

func TestReply_KeywordSelection(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantBody string
	}{
		{"visa", "my visa is expiring", "Immigration worry"},
		{"opt uppercase", "OPT deadline soon", "Immigration worry"},
		{"h1b", "h1b lottery results", "Immigration worry"},
		{"family", "family keeps calling", "Family pressure"},
		{"no match", "just tired today", "grounding action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reply(tt.message, 3, model.StyleGentle, "English")
			if !strings.Contains(got, tt.wantBody) {
				t.Errorf("Reply(%q) = %q, want body containing %q", tt.message, got, tt.wantBody)
			}
		})
	}
}

func TestReply_ImmigrationWinsOverFamily(t *testing.T) {
	// 両方のキーワードを含む場合はルール表の先勝ち
	got := Reply("visa stress and family pressure", 3, model.StyleGentle, "English")
	if !strings.Contains(got, "Immigration worry") {
		t.Errorf("Reply = %q, want immigration body", got)
	}
}

func TestReply_TonePrefixes(t *testing.T) {
	tests := []struct {
		style      model.CommStyle
		wantPrefix string
	}{
		{model.StyleDirect, "Here's the straight take:"},
		{model.StyleEncouraging, "You've got this—"},
		{model.StyleHumorous, "Tiny joke break 🚀:"},
		{model.StyleGentle, "Gently:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			got := Reply("hello", 3, tt.style, "English")
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("Reply with %s = %q, want prefix %q", tt.style, got, tt.wantPrefix)
			}
		})
	}
}

func TestReply_UnknownStyle_FallsBackToGentle(t *testing.T) {
	got := Reply("hello", 3, model.CommStyle("Sarcastic"), "English")
	if !strings.HasPrefix(got, "Gently:") {
		t.Errorf("Reply = %q, want gentle fallback", got)
	}
}

func TestReply_LanguageLeadIns(t *testing.T) {
	tests := []struct {
		language string
		wantLead string
	}{
		{"Spanish", "Un paso pequeño ahora: "},
		{"Hindi", "Ek chhota agla kadam: "},
		{"Mandarin", "选择一个小的下一步："},
		{"Arabic", "خطوة صغيرة تالية: "},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got := Reply("hello", 3, model.StyleGentle, tt.language)
			if !strings.Contains(got, tt.wantLead) {
				t.Errorf("Reply in %s = %q, want lead-in %q", tt.language, got, tt.wantLead)
			}
		})
	}
}

func TestReply_EnglishHasNoLeadIn(t *testing.T) {
	got := Reply("hello", 3, model.StyleGentle, "English")
	want := "Gently: Thanks for sharing. One grounding action, then a 10-minute next step."
	if got != want {
		t.Errorf("Reply = %q, want %q", got, want)
	}
}

func TestReply_Deterministic(t *testing.T) {
	first := Reply("visa worry", 2, model.StyleDirect, "Spanish")
	second := Reply("visa worry", 2, model.StyleDirect, "Spanish")
	if first != second {
		t.Errorf("same inputs produced different replies: %q vs %q", first, second)
	}
}

func TestTemplateFor(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"visa question", "immigration"},
		{"family dinner", "family"},
		{"anything else", "grounding"},
	}

	for _, tt := range tests {
		if got := TemplateFor(tt.message); got != tt.want {
			t.Errorf("TemplateFor(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
