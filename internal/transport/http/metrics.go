package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	issuesReportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "issues_reported_total",
			Help: "Total number of reported issues by category",
		},
		[]string{"category"},
	)

	issueFlagsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_flags_total",
		Help: "Total number of accepted issue flags",
	})

	hiddenIssueFlagsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_flags_hidden_total",
		Help: "Total number of flags that left the issue hidden",
	})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_reports_rate_limited_total",
		Help: "Total number of issue reports rejected by the rate limiter",
	})
)

// responseWriterWrapper captures the status code written by the handler.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{w, http.StatusOK}
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := newResponseWriterWrapper(w)
		next.ServeHTTP(wrapper, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapper.statusCode)

		httpRequestsTotal.WithLabelValues(routePattern(r), r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(routePattern(r), r.Method).Observe(duration)
	})
}

// routePattern returns the matched chi pattern so IDs do not explode label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return "unmatched"
}
