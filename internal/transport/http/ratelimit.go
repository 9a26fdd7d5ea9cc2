package http

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/pkg/api"
	"github.com/civictrack/issue-reporter/pkg/logger/sl"
)

const reportIssuePattern = "/api/issues/report"

// rateLimit counts issue reports per client and rejects them once the limiter says so.
// Other operations and limiter failures pass through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil || routePattern(r) != reportIssuePattern {
			next.ServeHTTP(w, r)
			return
		}

		key := clientKey(r)

		allowed, retryAfter, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			s.log.Error("rate limiter failed, letting request through",
				sl.Err(err),
				slog.String("request_id", getRequestID(r.Context())),
			)
			next.ServeHTTP(w, r)

			return
		}

		if !allowed {
			seconds := int64(math.Ceil(retryAfter.Seconds()))

			s.log.Warn("rate limit exceeded", slog.String("key", key), slog.Int64("retry_after", seconds))
			rateLimitedTotal.Inc()

			w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
			s.respond(w, http.StatusTooManyRequests, api.RateLimitError{
				Error:      apperrors.ErrRateLimited.Error(),
				RetryAfter: seconds,
			})

			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by the address left by middleware.RealIP.
// Client supplied identity headers are ignored.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "ip:" + host
}
