package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProxyMetrics holds every collector the service exports.
type ProxyMetrics struct {
	registry *prometheus.Registry

	// Inbound HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Upstream API
	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamErrorsTotal   *prometheus.CounterVec

	// Pricing
	RateFetchesTotal  *prometheus.CounterVec
	RateFetchDuration prometheus.Histogram
	RatesLoaded       prometheus.Gauge
	ConversionsTotal  *prometheus.CounterVec
}

// NewProxyMetrics registers the collectors on a fresh registry so several
// instances can coexist in one process.
func NewProxyMetrics() *ProxyMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &ProxyMetrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proxy_http_requests_total",
				Help: "Total number of inbound HTTP requests",
			},
			[]string{"route", "method", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "proxy_http_request_duration_seconds",
				Help:    "Inbound HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms .. ~20s
			},
			[]string{"route", "method"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proxy_upstream_requests_total",
				Help: "Requests forwarded to the JustWatch API by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		UpstreamErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proxy_upstream_errors_total",
				Help: "Transport failures talking to the JustWatch API",
			},
			[]string{"endpoint"},
		),

		RateFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_rate_fetches_total",
				Help: "Exchange rate fetches by result",
			},
			[]string{"result"},
		),

		RateFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pricing_rate_fetch_duration_seconds",
				Help:    "Exchange rate fetch duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),

		RatesLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricing_rates_loaded",
				Help: "Number of currencies in the loaded rate table",
			},
		),

		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_conversions_total",
				Help: "USD conversions by outcome",
			},
			[]string{"reason"},
		),
	}
}

func (m *ProxyMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records a served inbound request
func (m *ProxyMetrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *ProxyMetrics) RecordUpstream(endpoint string, status int) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *ProxyMetrics) RecordUpstreamError(endpoint string) {
	if m == nil {
		return
	}
	m.UpstreamErrorsTotal.WithLabelValues(endpoint).Inc()
}

// RecordRateFetch records one exchange rate fetch; rates is ignored unless result is "success".
func (m *ProxyMetrics) RecordRateFetch(result string, elapsed time.Duration, rates int) {
	if m == nil {
		return
	}
	m.RateFetchesTotal.WithLabelValues(result).Inc()
	m.RateFetchDuration.Observe(elapsed.Seconds())
	if result == "success" {
		m.RatesLoaded.Set(float64(rates))
	}
}

func (m *ProxyMetrics) RecordConversion(reason string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(reason).Inc()
}
