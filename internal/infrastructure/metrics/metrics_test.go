package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestObserveSalesSummary(t *testing.T) {
	m := metrics.New()
	m.ObserveSalesSummary(salessummary.Weekly, 13)
	m.ObserveSalesSummary(salessummary.Weekly, 2)

	body := scrape(t, m)
	assert.Contains(t, body, `inventario_sales_summary_requests_total{granularity="weekly"} 2`)
	assert.Contains(t, body, "inventario_sales_summary_buckets_count 2")
}

func TestObserveHTTP(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP("/api/dashboard/sales-summary", http.StatusTeapot, 10*time.Millisecond)
	m.ObserveHTTP("", http.StatusNotFound, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `inventario_http_requests_total{code="418",route="/api/dashboard/sales-summary"} 1`)
	assert.Contains(t, body, `inventario_http_requests_total{code="404",route="unknown"} 1`)
	assert.Contains(t, body, `inventario_http_request_duration_seconds_bucket{route="/api/dashboard/sales-summary"`)
}

func TestNilMetricsEsSeguro(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveSalesSummary(salessummary.Daily, 1)
		m.ObserveHTTP("/x", 200, time.Second)
	})

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
