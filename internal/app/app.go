// Package app はアプリケーションの初期化と起動モードの振り分けを行う。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/talk2me/internal/coach"
	"github.com/hitoshi/talk2me/internal/config"
	"github.com/hitoshi/talk2me/internal/database"
	"github.com/hitoshi/talk2me/internal/handler"
	"github.com/hitoshi/talk2me/internal/logger"
	"github.com/hitoshi/talk2me/internal/metrics"
	"github.com/hitoshi/talk2me/internal/middleware"
	"github.com/hitoshi/talk2me/internal/security"
	"github.com/hitoshi/talk2me/internal/state"
	"github.com/hitoshi/talk2me/internal/store"
	"github.com/hitoshi/talk2me/internal/therapist"
)

// Init はアプリケーションの初期化を行う。
// JSON構造化ログをセットアップしてから環境変数でConfigを読み込む。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("store_backend", cfg.StoreBackend),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandExport:
		return runExport(cfg, args[1:])
	default:
		return runServe(cfg)
	}
}

// openStore は設定されたバックエンドのストアを開く。
// 戻り値のcleanupは接続等の後始末を行う（常に非nil）。
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, func() {}, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store.NewPostgresStore(db, slog.Default()), func() { db.Close() }, nil

	case config.StoreBackendMemory:
		return store.NewMemoryStore(), func() {}, nil

	default:
		st, err := store.NewFileStore(cfg.DataDir, slog.Default())
		if err != nil {
			return nil, func() {}, err
		}
		return st, func() {}, nil
	}
}

// runServe はAPIサーバーモードで起動する。
// ストアを開き、状態集約と全依存関係をワイヤリングし、HTTPサーバーを
// 起動する。SIGINTまたはSIGTERMシグナルを受信するとグレースフル
// シャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストアを開く
	st, cleanup, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer cleanup()

	slog.Info("store opened", slog.String("backend", cfg.StoreBackend))

	// 2. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. 状態集約の再水和
	ctx := context.Background()
	aggregate := state.NewAggregate(ctx, st, state.AggregateConfig{
		Filter:  security.NewContentFilter(),
		Metrics: collector,
		Logger:  slog.Default(),
	})

	// 4. ドメインサービスの初期化
	chatService := coach.NewService(aggregate, collector)

	// 5. レートリミッターの初期化（req/min -> req/sec に変換）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.PostRate = rate.Limit(float64(cfg.RateLimitPost) / 60.0)
	rateLimiterCfg.PostBurst = cfg.RateLimitPost
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		State:             aggregate,
		Chat:              chatService,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		StatusCounter:     collector,
		MetricsHandler:    metrics.Handler(registry),
	})

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.StoreBackend != config.StoreBackendPostgres {
		return fmt.Errorf("migrate requires STORE_BACKEND=postgres (current: %s)", cfg.StoreBackend)
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runExport はセラピスト共有用サマリーをローカルファイルに書き出す。
// 出力先はargsの先頭で指定でき、省略時はプロフィール名から導出した
// ファイル名をカレントディレクトリに作る。
func runExport(cfg *config.Config, args []string) error {
	st, cleanup, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer cleanup()

	aggregate := state.NewAggregate(context.Background(), st, state.AggregateConfig{
		Filter: security.NewContentFilter(),
		Logger: slog.Default(),
	})

	profile := aggregate.Profile()
	summary := therapist.BuildSummary(profile, aggregate.Moods(), aggregate.JournalEntries())

	path := therapist.ExportFilename(profile)
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	slog.Info("summary exported", slog.String("path", path))
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
