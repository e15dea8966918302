// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/todolist/internal/model"
)

// SessionCookieName はセッションIDを保持するHTTP Only Cookieの名前。
const SessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストにセッションアイデンティティを格納するためのキー。
var identityContextKey = contextKey("session_identity")

// IdentityResolver はセッションIDからアイデンティティを解決するインターフェース。
// auth.Serviceの部分集合として定義する。
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, sessionID string) (*model.SessionIdentity, error)
}

// NewIdentityMiddleware はCookieのセッションIDからアイデンティティを解決し、
// リクエストコンテキストに注入するミドルウェアを返す。
// Cookieなし・セッション無効・解決失敗はいずれも匿名として後続に渡す。
// 匿名は正常な状態であり、このミドルウェアが401を返すことはない。
func NewIdentityMiddleware(resolver IdentityResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := resolver.CurrentIdentity(r.Context(), cookie.Value)
			if err != nil {
				// ストア障害時は匿名として継続する。ページ自体は表示できる。
				slog.Error("failed to resolve session identity",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext はリクエストコンテキストからセッションアイデンティティを取得する。
// 匿名リクエストではnilを返す。nilはエラーではない。
func IdentityFromContext(ctx context.Context) *model.SessionIdentity {
	identity, ok := ctx.Value(identityContextKey).(*model.SessionIdentity)
	if !ok {
		return nil
	}
	return identity
}

// ContextWithIdentity はコンテキストにセッションアイデンティティを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity *model.SessionIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
