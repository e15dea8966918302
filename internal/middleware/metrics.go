package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPRecorder はHTTPリクエストのメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type HTTPRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(method, path string, duration time.Duration)
}

// NewMetricsMiddleware はリクエストごとにステータスコードと処理時間を記録するミドルウェアを返す。
// パスラベルにはchiのルートパターンを使用し、カーディナリティを抑える。
func NewMetricsMiddleware(rec HTTPRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			sr := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(sr, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			rec.RecordHTTPStatus(sr.statusCode)
			rec.RecordRequestDuration(r.Method, path, time.Since(start))
		})
	}
}
