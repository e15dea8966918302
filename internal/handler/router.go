package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/todolist/internal/metrics"
	"github.com/hitoshi/todolist/internal/middleware"
)

// Pinger はデータベース疎通確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	IdentityResolver middleware.IdentityResolver
	RateLimiter      *middleware.RateLimiter
	CSRFConfig       middleware.CSRFConfig
	Logger           *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// Todo
	TodoService TodoServiceInterface

	// 観測
	Metrics  *metrics.Collector   // nil可
	Gatherer prometheus.Gatherer  // nil可（/metricsを公開しない）
	Pinger   Pinger               // nil可（/healthは常に200）
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Metrics → Logging → Identity → CSRF → RateLimit(General)
//
// /healthと/metricsはアプリケーションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) (http.Handler, error) {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pageHandler, err := NewPageHandler(deps.TodoService)
	if err != nil {
		return nil, err
	}
	// 型付きnilポインタをインターフェースに入れないようにする
	var loginRec LoginRecorder
	if deps.Metrics != nil {
		loginRec = deps.Metrics
	}
	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, loginRec)

	// --- 運用エンドポイント（ミドルウェアチェーンの外） ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.Pinger != nil {
			if err := deps.Pinger.PingContext(req.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- アプリケーションルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRecoveryMiddleware())
		r.Use(middleware.NewSecurityHeadersMiddleware())
		if deps.Metrics != nil {
			r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
		}
		r.Use(middleware.NewLoggingMiddleware(logger))
		r.Use(middleware.NewIdentityMiddleware(deps.IdentityResolver))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// ページ
		r.Get("/", pageHandler.Index)

		// Todo操作（フォームPOST、状態変更レート制限を追加）
		r.Group(func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.MutationMiddleware())
			}
			r.Post("/todos", pageHandler.CreateTodo)
			r.Post("/todos/delete", pageHandler.DeleteTodo)
		})

		// 認証（OAuthフローとセッション管理）
		r.Route("/auth", func(r chi.Router) {
			r.Get("/google/login", authHandler.Login)
			r.Get("/google/callback", authHandler.Callback)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	return r, nil
}
