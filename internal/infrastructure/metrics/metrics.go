// Package metrics expone métricas Prometheus del dashboard con un registry propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// Metrics colectores del servicio. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	summaryRequests *prometheus.CounterVec
	summaryBuckets  prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New inicializa el registry y los colectores.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	summaryRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_sales_summary_requests_total",
		Help: "Resúmenes de ventas calculados por granularidad.",
	}, []string{"granularity"})
	summaryBuckets := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventario_sales_summary_buckets",
		Help:    "Número de buckets devueltos por resumen.",
		Buckets: []float64{1, 4, 12, 31, 53, 92, 366},
	})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_http_requests_total",
		Help: "Peticiones HTTP por ruta y código de estado.",
	}, []string{"route", "code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventario_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(summaryRequests, summaryBuckets, httpRequests, httpDuration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		summaryRequests: summaryRequests,
		summaryBuckets:  summaryBuckets,
		httpRequests:    httpRequests,
		httpDuration:    httpDuration,
	}
}

// Handler http.Handler para /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveSalesSummary cuenta un resumen calculado y el tamaño de su serie.
func (m *Metrics) ObserveSalesSummary(g salessummary.Granularity, buckets int) {
	if m == nil {
		return
	}
	m.summaryRequests.WithLabelValues(string(g)).Inc()
	m.summaryBuckets.Observe(float64(buckets))
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Registerer registry para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
