// Package metrics exposes Prometheus counters for checkouts and HTTP traffic.
// A nil *Metrics is a no-op.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"khanmedical/m/domain"
	"khanmedical/m/internal/billing"
)

type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	checkouts       prometheus.Counter
	rejections      *prometheus.CounterVec
	salesAmount     prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmc_checkouts_total",
		Help: "Committed bills.",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kmc_checkout_rejections_total",
		Help: "Checkouts rejected by validation, by reason.",
	}, []string{"reason"})
	sales := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmc_sales_amount_total",
		Help: "Sum of committed bill totals.",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kmc_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kmc_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	registry.MustRegister(checkouts, rejections, sales, requests, duration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		checkouts:       checkouts,
		rejections:      rejections,
		salesAmount:     sales,
		requestsTotal:   requests,
		requestDuration: duration,
	}
}

// Handler serves the registry, or 503 when metrics are disabled.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Checkout records a committed bill.
func (m *Metrics) Checkout(bill domain.Bill) {
	if m == nil {
		return
	}
	m.checkouts.Inc()
	m.salesAmount.Add(bill.Total.InexactFloat64())
}

// Reject records a rejected checkout.
func (m *Metrics) Reject(err error) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(Reason(err)).Inc()
}

// Reason maps a checkout error to a low-cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, billing.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, billing.ErrInsufficientCash):
		return "insufficient_cash"
	case errors.Is(err, billing.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "other"
	}
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
