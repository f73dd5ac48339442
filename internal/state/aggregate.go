package state

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/talk2me/internal/model"
	"github.com/hitoshi/talk2me/internal/store"
)

// 永続化レイアウトのキー一覧。各キーの値の形は対応するエンティティ/
// コンテナのJSON表現と一致する。
const (
	KeyProfile       = "profile"
	KeyJournal       = "journal"
	KeyMoods         = "moods"
	KeyCircles       = "circles"
	KeyFeed          = "anon-feed"
	KeyUILanguage    = "ui-lang"
	KeyManualOffline = "manual-offline"
	KeyChat          = "coach-chat"
)

// ContentFilter は公開テキストへ保存前に適用するモデレーションパス。
// 戻り値はマスク済みテキストと、フラグ語が検出されたかどうか。
type ContentFilter interface {
	Moderate(text string) (moderated string, flagged bool)
}

// Recorder はAggregateが発行するメトリクスの記録先。
// metricsパッケージのCollectorが実装する。
type Recorder interface {
	RecordStoreWriteFailure(key string)
	RecordMoodSaved(value int)
	RecordJournalEntrySaved()
	RecordFeedPostSaved(flagged bool)
}

// noopRecorder はメトリクス未設定時のフォールバック。
type noopRecorder struct{}

func (noopRecorder) RecordStoreWriteFailure(string) {}
func (noopRecorder) RecordMoodSaved(int)            {}
func (noopRecorder) RecordJournalEntrySaved()       {}
func (noopRecorder) RecordFeedPostSaved(bool)       {}

// AggregateConfig はAggregate生成時の依存関係をまとめる。
type AggregateConfig struct {
	Filter  ContentFilter    // 必須: 壁投稿のモデレーション
	Metrics Recorder         // 省略時はno-op
	Logger  *slog.Logger     // 省略時はslog.Default()
	NewID   func() string    // 省略時はuuid.NewString
	Now     func() time.Time // 省略時はtime.Now
}

// Aggregate は全ビューへ公開されるアプリ全体のセッション状態。
// 各エンティティコンテナを排他的に所有し、ビュー側はフォーム下書きの
// 一時コピーのみを保持する。ミューテックスにより「同時に1つの論理
// ライター」を構造的に保証する（参照実装のシングルスレッドイベント
// ループに相当）。
type Aggregate struct {
	mu sync.Mutex

	profile *Field[*model.Profile]
	journal *Field[[]model.JournalEntry]
	moods   *Field[[]model.MoodEntry]
	circles *Field[[]model.Circle]
	feed    *Field[[]model.FeedPost]
	uiLang  *Field[string]
	offline *Field[bool]
	chat    *Field[[]model.ChatMessage]

	store   store.Store
	filter  ContentFilter
	metrics Recorder
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

// NewAggregate はストアから各フィールドを再水和してAggregateを生成する。
// circlesは初回利用時に3件の固定デフォルトでシードされる。
func NewAggregate(ctx context.Context, st store.Store, cfg AggregateConfig) *Aggregate {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopRecorder{}
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	a := &Aggregate{
		store:   st,
		filter:  cfg.Filter,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		newID:   cfg.NewID,
		now:     cfg.Now,
	}
	a.mount(ctx)
	return a
}

// mount は全フィールドをストアから読み込む。Reset後の再シードにも使う。
func (a *Aggregate) mount(ctx context.Context) {
	a.profile = NewField[*model.Profile](ctx, a.store, KeyProfile, nil, a.logger)
	a.journal = NewField(ctx, a.store, KeyJournal, []model.JournalEntry{}, a.logger)
	a.moods = NewField(ctx, a.store, KeyMoods, []model.MoodEntry{}, a.logger)
	a.circles = NewField(ctx, a.store, KeyCircles, model.DefaultCircles(), a.logger)
	a.feed = NewField(ctx, a.store, KeyFeed, []model.FeedPost{}, a.logger)
	a.uiLang = NewField(ctx, a.store, KeyUILanguage, model.DefaultLanguage, a.logger)
	a.offline = NewField(ctx, a.store, KeyManualOffline, false, a.logger)
	a.chat = NewField(ctx, a.store, KeyChat, model.DefaultChatLog(), a.logger)
}

// persist はフィールドのSetを実行し、書き込み失敗をログとメトリクスに
// 記録する。永続化の喪失はセッションを止めない（既知の制限）ため、
// 呼び出し側へはエラーを返さない。
func persist[T any](a *Aggregate, ctx context.Context, f *Field[T], v T) {
	if err := f.Set(ctx, v); err != nil {
		a.logger.Error("write-through failed, session continues in-memory",
			slog.String("key", f.Key()),
			slog.String("error", err.Error()),
		)
		a.metrics.RecordStoreWriteFailure(f.Key())
	}
}

// --- 参照系 ---

// Profile は現在のプロフィールのコピーを返す。未作成の場合はnil。
func (a *Aggregate) Profile() *model.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyProfile(a.profile.Get())
}

// HasProfile はプロフィールが存在するかどうかを返す。
func (a *Aggregate) HasProfile() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile.Get() != nil
}

// JournalEntries はジャーナルの全エントリを挿入順で返す。
func (a *Aggregate) JournalEntries() []model.JournalEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.JournalEntry(nil), a.journal.Get()...)
}

// Moods はムードログを挿入順（=時系列）で返す。
func (a *Aggregate) Moods() []model.MoodEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.MoodEntry(nil), a.moods.Get()...)
}

// LastMoodValue は直近のムード値を返す。記録がない場合は中立の3。
func (a *Aggregate) LastMoodValue() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	ms := a.moods.Get()
	if len(ms) == 0 {
		return 3
	}
	return ms[len(ms)-1].Value
}

// Circles はコミュニティ一覧を返す。
func (a *Aggregate) Circles() []model.Circle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Circle(nil), a.circles.Get()...)
}

// Feed は匿名壁の投稿を新しい順で返す。
func (a *Aggregate) Feed() []model.FeedPost {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.FeedPost(nil), a.feed.Get()...)
}

// ChatLog はコーチとの会話ログを返す。
func (a *Aggregate) ChatLog() []model.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.ChatMessage(nil), a.chat.Get()...)
}

// UILanguage は現在のUI言語を返す。
func (a *Aggregate) UILanguage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.uiLang.Get()
}

// ManualOffline は手動オフラインフラグを返す。フラグは表示専用で、
// いかなる動作もゲートしない。
func (a *Aggregate) ManualOffline() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offline.Get()
}

// --- 更新系 ---

// SetProfile はプロフィール全体を置き換える。サインアップおよび設定
// 画面からの保存に使用する。nameとemailは必須。
func (a *Aggregate) SetProfile(ctx context.Context, p model.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return model.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(p.Email) == "" {
		return model.NewMissingRequiredFieldError("email")
	}
	if p.Questionnaire != nil {
		if !p.Questionnaire.StressLevel.IsValid() {
			return model.NewInvalidStressLevelError(string(p.Questionnaire.StressLevel))
		}
		if !p.Questionnaire.CommStyle.IsValid() {
			return model.NewInvalidCommStyleError(string(p.Questionnaire.CommStyle))
		}
	}
	if p.Coach != nil {
		if !p.Coach.Style.IsValid() {
			return model.NewInvalidCommStyleError(string(p.Coach.Style))
		}
		if !model.IsSupportedLanguage(p.Coach.Language) {
			return model.NewInvalidLanguageError(p.Coach.Language)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	persist(a, ctx, a.profile, copyProfile(&p))
	return nil
}

// SetQuestionnaire はオンボーディング2ステップ目の質問票をプロフィール
// に埋め込む。プロフィール未作成時はエラー。
func (a *Aggregate) SetQuestionnaire(ctx context.Context, q model.Questionnaire) error {
	if !q.StressLevel.IsValid() {
		return model.NewInvalidStressLevelError(string(q.StressLevel))
	}
	if !q.CommStyle.IsValid() {
		return model.NewInvalidCommStyleError(string(q.CommStyle))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.profile.Get()
	if p == nil {
		return model.NewProfileRequiredError()
	}

	next := copyProfile(p)
	qc := q
	qc.CopingPrefs = append([]string(nil), q.CopingPrefs...)
	next.Questionnaire = &qc
	persist(a, ctx, a.profile, next)
	return nil
}

// SetCoach はオンボーディング3ステップ目のコーチ設定をプロフィールに
// 埋め込む。設定画面からの変更にも使用する。
func (a *Aggregate) SetCoach(ctx context.Context, c model.Coach) error {
	if !c.Style.IsValid() {
		return model.NewInvalidCommStyleError(string(c.Style))
	}
	if !model.IsSupportedLanguage(c.Language) {
		return model.NewInvalidLanguageError(c.Language)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.profile.Get()
	if p == nil {
		return model.NewProfileRequiredError()
	}

	next := copyProfile(p)
	cc := c
	next.Coach = &cc
	persist(a, ctx, a.profile, next)
	return nil
}

// AddMood はムードチェックインを末尾に追記する。値は1〜5のみ受け付け、
// 範囲外は書き込み境界で拒否する。
func (a *Aggregate) AddMood(ctx context.Context, value int, note string) (model.MoodEntry, error) {
	if !model.IsValidMoodValue(value) {
		return model.MoodEntry{}, model.NewInvalidMoodValueError(value)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	entry := model.MoodEntry{
		Value:     value,
		Note:      note,
		Timestamp: a.now(),
	}
	persist(a, ctx, a.moods, append(a.moods.Get(), entry))
	a.metrics.RecordMoodSaved(value)
	return entry, nil
}

// AddJournalEntry はジャーナルを末尾に追記する。空または空白のみの
// テキストは拒否する。IDは衝突しない識別子を新規採番する。
func (a *Aggregate) AddJournalEntry(ctx context.Context, text string) (model.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return model.JournalEntry{}, model.NewEmptyTextError("journal entry")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	entry := model.JournalEntry{
		ID:        a.newID(),
		Timestamp: a.now(),
		Text:      text,
	}
	persist(a, ctx, a.journal, append(a.journal.Get(), entry))
	a.metrics.RecordJournalEntrySaved()
	return entry, nil
}

// ToggleCircle は指定IDのコミュニティのjoinedフラグを反転する。
// 未知のIDに対しては何もせずnilを返す。
func (a *Aggregate) ToggleCircle(ctx context.Context, id string) *model.Circle {
	a.mu.Lock()
	defer a.mu.Unlock()

	circles := append([]model.Circle(nil), a.circles.Get()...)
	for i := range circles {
		if circles[i].ID == id {
			circles[i].Joined = !circles[i].Joined
			persist(a, ctx, a.circles, circles)
			c := circles[i]
			return &c
		}
	}
	return nil
}

// FindCircle は指定IDのコミュニティを返す。見つからない場合はnil。
func (a *Aggregate) FindCircle(id string) *model.Circle {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.circles.Get() {
		if c.ID == id {
			cc := c
			return &cc
		}
	}
	return nil
}

// AddFeedPost は匿名壁へ投稿を先頭に追加する（新しい順）。
// テキストは必ずモデレーションを通した形で保存され、未処理の入力が
// 永続化されることはない。
func (a *Aggregate) AddFeedPost(ctx context.Context, text string, anonymous bool) (model.FeedPost, error) {
	if strings.TrimSpace(text) == "" {
		return model.FeedPost{}, model.NewEmptyTextError("post")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	moderated, flagged := a.filter.Moderate(text)

	author := model.AnonymousAuthor
	if !anonymous {
		if p := a.profile.Get(); p != nil && p.Name != "" {
			author = p.Name
		} else {
			author = "You"
		}
	}

	post := model.FeedPost{
		ID:        a.newID(),
		Timestamp: a.now(),
		Author:    author,
		Text:      moderated,
	}
	persist(a, ctx, a.feed, append([]model.FeedPost{post}, a.feed.Get()...))
	a.metrics.RecordFeedPostSaved(flagged)
	return post, nil
}

// AppendChat は会話ターンをログ末尾に追記する。ユーザー発話と生成済み
// 応答のペアで呼び出される。
func (a *Aggregate) AppendChat(ctx context.Context, msgs ...model.ChatMessage) {
	a.mu.Lock()
	defer a.mu.Unlock()
	persist(a, ctx, a.chat, append(a.chat.Get(), msgs...))
}

// SetUILanguage はUI言語を変更する。サポート外の言語は拒否する。
func (a *Aggregate) SetUILanguage(ctx context.Context, lang string) error {
	if !model.IsSupportedLanguage(lang) {
		return model.NewInvalidLanguageError(lang)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	persist(a, ctx, a.uiLang, lang)
	return nil
}

// SetManualOffline は手動オフラインフラグを変更する。
func (a *Aggregate) SetManualOffline(ctx context.Context, offline bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	persist(a, ctx, a.offline, offline)
}

// Reset は全フィールドを未シードのデフォルトへ戻す。ストアの全キーを
// 削除したうえで各フィールドを再マウントするため、circlesは3件の
// シード、チャットは挨拶1件の状態に戻る。呼び出し側は初期画面への
// ナビゲーションを行うこと。
func (a *Aggregate) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	a.mount(ctx)
	return nil
}

// copyProfile はネストを含むプロフィールの独立コピーを返す。
// ビューへ内部状態への参照を漏らさないための防壁。
func copyProfile(p *model.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Questionnaire != nil {
		q := *p.Questionnaire
		q.CopingPrefs = append([]string(nil), p.Questionnaire.CopingPrefs...)
		cp.Questionnaire = &q
	}
	if p.Coach != nil {
		c := *p.Coach
		cp.Coach = &c
	}
	return &cp
}
