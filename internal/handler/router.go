package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/talk2me/internal/middleware"
	"github.com/hitoshi/talk2me/internal/state"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// 状態集約。全ハンドラーが共有する唯一の状態所有者。
	State *state.Aggregate

	// チャット応答サービス
	Chat ChatSender

	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusCounter     middleware.StatusCounter

	// Prometheusスクレイプ用ハンドラー。nilの場合/metricsは公開しない。
	MetricsHandler http.Handler
}

// NewRouter は全ビュールートとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → RateLimit(General)
//
// メインページのルートはプロフィールゲートの内側に配置し、プロフィール
// 未作成のまま直接アクセスされた場合は"/"へリダイレクトする。
// オンボーディングのルートはゲートの外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger, deps.StatusCounter))

	onboardingHandler := NewOnboardingHandler(deps.State)
	homeHandler := NewHomeHandler(deps.State)
	journalHandler := NewJournalHandler(deps.State)
	chatHandler := NewChatHandler(deps.State, deps.Chat)
	communityHandler := NewCommunityHandler(deps.State)
	therapistHandler := NewTherapistHandler(deps.State)
	settingsHandler := NewSettingsHandler(deps.State)

	// --- 運用ルート（レート制限の外） ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// --- エントリポイント ---
		// プロフィール不在時はサインアップ、作成済みならホームのビューを返す
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if deps.State.HasProfile() {
				homeHandler.Home(w, req)
				return
			}
			onboardingHandler.SignUpView(w, req)
		})

		// --- オンボーディング（ゲートの外） ---
		r.Post("/signup", onboardingHandler.SignUp)
		r.Route("/onboarding", func(r chi.Router) {
			r.Get("/questionnaire", onboardingHandler.QuestionnaireView)
			r.Post("/questionnaire", onboardingHandler.Questionnaire)
			r.Get("/coach", onboardingHandler.CoachView)
			r.Post("/coach", onboardingHandler.Coach)
		})

		// --- メインページ（プロフィールゲートの内側） ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewProfileGateMiddleware(deps.State))

			r.Get("/home", homeHandler.Home)
			r.Post("/moods", homeHandler.AddMood)
			r.Put("/offline", homeHandler.SetOffline)
			r.Put("/language", homeHandler.SetLanguage)

			r.Get("/journal", journalHandler.List)
			r.Post("/journal", journalHandler.Add)

			r.Get("/coach", chatHandler.View)
			r.Post("/coach/messages", chatHandler.Send)

			r.Route("/community", func(r chi.Router) {
				r.Get("/", communityHandler.View)

				// 壁投稿には投稿専用レート制限を追加
				if deps.RateLimiter != nil {
					r.With(deps.RateLimiter.PostMiddleware()).Post("/posts", communityHandler.AddPost)
				} else {
					r.Post("/posts", communityHandler.AddPost)
				}

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", communityHandler.Detail)
					r.Post("/membership", communityHandler.ToggleMembership)
				})
			})

			r.Route("/therapists", func(r chi.Router) {
				r.Get("/", therapistHandler.List)
				r.Get("/summary", therapistHandler.Summary)
				r.Get("/summary/export", therapistHandler.Export)
			})

			r.Get("/settings", settingsHandler.View)
			r.Put("/settings/profile", settingsHandler.UpdateProfile)
			r.Put("/settings/coach", settingsHandler.UpdateCoach)
			r.Post("/reset", settingsHandler.Reset)
		})
	})

	return r
}
