package coach

import (
	"context"
	"strings"

	"github.com/hitoshi/talk2me/internal/model"
	"github.com/hitoshi/talk2me/internal/state"
)

// Recorder はコーチ応答のメトリクス記録先。
type Recorder interface {
	RecordCoachReply(template string)
}

// noopRecorder はメトリクス未設定時のフォールバック。
type noopRecorder struct{}

func (noopRecorder) RecordCoachReply(string) {}

// Service はチャットのドメインロジックを提供する。
// ユーザー発話を受け取り、スクリプト応答を生成して、会話ログへ
// ペアで追記する。
type Service struct {
	app     *state.Aggregate
	metrics Recorder
}

// NewService はServiceを生成する。metricsはnil可。
func NewService(app *state.Aggregate, metrics Recorder) *Service {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Service{app: app, metrics: metrics}
}

// Send はユーザーのメッセージを処理する。空または空白のみの
// メッセージは拒否する。成功時は追記された（ユーザー発話, 応答）の
// 2件を返す。
func (s *Service) Send(ctx context.Context, text string) ([]model.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, model.NewEmptyTextError("message")
	}

	// コーチ設定が未完了でも会話は成立させる（デフォルトのトーンと言語）
	style := model.StyleGentle
	language := model.DefaultLanguage
	if p := s.app.Profile(); p != nil && p.Coach != nil {
		style = p.Coach.Style
		language = p.Coach.Language
	}

	reply := Reply(trimmed, s.app.LastMoodValue(), style, language)

	turn := []model.ChatMessage{
		{Role: model.ChatRoleUser, Text: trimmed},
		{Role: model.ChatRoleBot, Text: reply},
	}
	s.app.AppendChat(ctx, turn...)
	s.metrics.RecordCoachReply(TemplateFor(trimmed))

	return turn, nil
}
