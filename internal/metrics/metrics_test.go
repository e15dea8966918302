package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue はレジストリから指定メトリクスのカウンタ値を取得する。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			if len(mf.GetMetric()) != 1 {
				t.Fatalf("expected 1 metric for %s, got %d", name, len(mf.GetMetric()))
			}
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordTodoCreated_IncrementsCounter はTodo作成カウンタが増加することを検証する。
func TestRecordTodoCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTodoCreated()
	c.RecordTodoCreated()

	if val := counterValue(t, reg, "todolist_todos_created_total"); val != 2 {
		t.Errorf("todos_created_total = %v, want 2", val)
	}
}

// TestRecordTodoDeleted_IncrementsCounter はTodo削除カウンタが増加することを検証する。
func TestRecordTodoDeleted_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTodoDeleted()

	if val := counterValue(t, reg, "todolist_todos_deleted_total"); val != 1 {
		t.Errorf("todos_deleted_total = %v, want 1", val)
	}
}

// TestRecordLogin_IncrementsCounters はログイン成功・失敗カウンタが独立に増加することを検証する。
func TestRecordLogin_IncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin()
	c.RecordLogin()
	c.RecordLoginFailure()

	if val := counterValue(t, reg, "todolist_logins_total"); val != 2 {
		t.Errorf("logins_total = %v, want 2", val)
	}
	if val := counterValue(t, reg, "todolist_login_failures_total"); val != 1 {
		t.Errorf("login_failures_total = %v, want 1", val)
	}
}

// TestRecordHTTPStatus_LabelsByCode はステータスコード別にカウントされることを検証する。
func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	counts := make(map[string]float64)
	for _, mf := range metrics {
		if mf.GetName() != "todolist_http_status_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "status_code" {
					counts[label.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["200"] != 2 {
		t.Errorf("status 200 = %v, want 2", counts["200"])
	}
	if counts["404"] != 1 {
		t.Errorf("status 404 = %v, want 1", counts["404"])
	}
}

// TestRecordRequestDuration_Observes はリクエスト時間のヒストグラムが記録されることを検証する。
func TestRecordRequestDuration_Observes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestDuration(http.MethodGet, "/", 50*time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "todolist_http_request_duration_seconds" {
			found = true
			if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
				t.Errorf("sample count = %d, want 1", count)
			}
		}
	}
	if !found {
		t.Error("metric todolist_http_request_duration_seconds not found")
	}
}

// TestHandler_ServesMetrics はPrometheusフォーマットでメトリクスが公開されることを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTodoCreated()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "todolist_todos_created_total 1") {
		t.Errorf("expected todolist_todos_created_total 1 in body, got:\n%s", body)
	}
}
