package coach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/talk2me/internal/model"
	"github.com/hitoshi/talk2me/internal/security"
	"github.com/hitoshi/talk2me/internal/state"
	"github.com/hitoshi/talk2me/internal/store"
)

// mockCoachRecorder はテンプレート別の呼び出しを記録するテスト用Recorder。
type mockCoachRecorder struct {
	templates []string
}

func (r *mockCoachRecorder) RecordCoachReply(template string) {
	r.templates = append(r.templates, template)
}

func newTestService(t *testing.T) (*Service, *state.Aggregate, *mockCoachRecorder) {
	t.Helper()
	a := state.NewAggregate(context.Background(), store.NewMemoryStore(), state.AggregateConfig{
		Filter: security.NewContentFilter(),
	})
	rec := &mockCoachRecorder{}
	return NewService(a, rec), a, rec
}

func TestSend_AppendsUserAndBotPair(t *testing.T) {
	svc, a, _ := newTestService(t)

	turn, err := svc.Send(context.Background(), "feeling low")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if len(turn) != 2 {
		t.Fatalf("len(turn) = %d, want 2", len(turn))
	}
	if turn[0].Role != model.ChatRoleUser || turn[0].Text != "feeling low" {
		t.Errorf("user message = %+v", turn[0])
	}
	if turn[1].Role != model.ChatRoleBot || turn[1].Text == "" {
		t.Errorf("bot message = %+v", turn[1])
	}

	// ログには挨拶 + ペアが残る
	chat := a.ChatLog()
	if len(chat) != 3 {
		t.Errorf("len(chat) = %d, want 3", len(chat))
	}
}

func TestSend_BlankMessage_Rejected(t *testing.T) {
	svc, a, _ := newTestService(t)

	_, err := svc.Send(context.Background(), "   ")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeEmptyText {
		t.Fatalf("expected EMPTY_TEXT, got %v", err)
	}
	if len(a.ChatLog()) != 1 {
		t.Error("rejected message was appended")
	}
}

func TestSend_TrimsWhitespace(t *testing.T) {
	svc, _, _ := newTestService(t)

	turn, err := svc.Send(context.Background(), "  visa worry  ")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if turn[0].Text != "visa worry" {
		t.Errorf("user text = %q, want trimmed", turn[0].Text)
	}
}

func TestSend_UsesCoachPersonaFromProfile(t *testing.T) {
	svc, a, _ := newTestService(t)
	ctx := context.Background()

	a.SetProfile(ctx, model.Profile{Name: "Ana", Email: "ana@example.com"})
	a.SetCoach(ctx, model.Coach{Language: "Spanish", Style: model.StyleDirect})

	turn, err := svc.Send(ctx, "hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	reply := turn[1].Text
	if !strings.HasPrefix(reply, "Here's the straight take:") {
		t.Errorf("reply = %q, want Direct tone", reply)
	}
	if !strings.Contains(reply, "Un paso pequeño ahora: ") {
		t.Errorf("reply = %q, want Spanish lead-in", reply)
	}
}

func TestSend_NoCoachConfigured_UsesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	turn, err := svc.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !strings.HasPrefix(turn[1].Text, "Gently:") {
		t.Errorf("reply = %q, want gentle default", turn[1].Text)
	}
}

func TestSend_RecordsTemplateMetric(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	svc.Send(ctx, "visa trouble")
	svc.Send(ctx, "random thought")

	if len(rec.templates) != 2 {
		t.Fatalf("len(templates) = %d, want 2", len(rec.templates))
	}
	if rec.templates[0] != "immigration" || rec.templates[1] != "grounding" {
		t.Errorf("templates = %v", rec.templates)
	}
}
