package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// 記事
	ArticleService ArticleServiceInterface

	// 観測系（nilの場合はスキップ）
	Logger         *slog.Logger
	Metrics        middleware.HTTPMetricsRecorder
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RecoveryMiddleware → RequestIDMiddleware → LoggingMiddleware → MetricsMiddleware
//	→ SecurityHeadersMiddleware → CORSMiddleware
//	→ (保護ルートのみ) SessionMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// LoggingとMetricsは依存が未設定の場合はスキップされる。
// 一覧取得と認証ルートは公開で、記事の作成とアーカイブのみセッション認証を要求する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	articleHandler := NewArticleHandler(deps.ArticleService)

	// --- 認証不要のルート ---

	r.Get("/health", healthCheck)

	// Prometheusメトリクスエンドポイント
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// ユーザー登録・ログイン
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)

		// 記事一覧（公開）
		r.Get("/articles", articleHandler.List)
		r.Get("/articles/{arg}", articleHandler.List)
		r.Get("/articles/{arg}/{page}", articleHandler.List)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// POST /api/article/new - 記事作成（作成専用レート制限を追加）
		r.With(deps.RateLimiter.ArticleCreationMiddleware()).Post("/api/article/new", articleHandler.New)

		// PUT /api/article/{id}/archive - 記事アーカイブ
		r.Put("/api/article/{id}/archive", articleHandler.Archive)
	})

	return r
}

// healthCheck は稼働確認用のエンドポイント。
// GET /health
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
