// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する。
// todo.Recorderを実装し、ハンドラー層からはHTTP系メトリクスを記録する。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	todosCreated    prometheus.Counter
	todosDeleted    prometheus.Counter
	logins          prometheus.Counter
	loginFailures   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todolist_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "todolist_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		todosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todolist_todos_created_total",
			Help: "作成されたTodoの合計数",
		}),
		todosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todolist_todos_deleted_total",
			Help: "削除されたTodoの合計数",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todolist_logins_total",
			Help: "OAuthログイン成功の合計数",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todolist_login_failures_total",
			Help: "OAuthログイン失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.todosCreated,
		c.todosDeleted,
		c.logins,
		c.loginFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
// pathはルートパターン（/todosなど）を渡す。生のURLはカーディナリティが高すぎる。
func (c *Collector) RecordRequestDuration(method, path string, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordTodoCreated はTodo作成を記録する。
func (c *Collector) RecordTodoCreated() {
	c.todosCreated.Inc()
}

// RecordTodoDeleted はTodo削除を記録する。
func (c *Collector) RecordTodoDeleted() {
	c.todosDeleted.Inc()
}

// RecordLogin はOAuthログイン成功を記録する。
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordLoginFailure はOAuthログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
