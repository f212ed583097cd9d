package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "donation",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route"},
	)

	TokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation",
			Name:      "tokens_total",
			Help:      "Token requests by payment method and outcome",
		},
		[]string{"method", "outcome"},
	)

	GrossAmountTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "donation",
			Name:      "gross_amount_total",
			Help:      "Gross amount of issued tokens by payment method",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, TokensTotal, GrossAmountTotal)
}

func IncToken(method, outcome string) {
	TokensTotal.WithLabelValues(method, outcome).Inc()
}

func AddGross(method string, amount float64) {
	GrossAmountTotal.WithLabelValues(method).Add(amount)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency labelled by the chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
