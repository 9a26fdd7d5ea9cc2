// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/service"
	"github.com/civictrack/issue-reporter/internal/validation"
	"github.com/civictrack/issue-reporter/pkg/api"
	"github.com/civictrack/issue-reporter/pkg/logger/sl"
	"github.com/civictrack/issue-reporter/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RateLimiter decides whether a caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log               *slog.Logger
	issueService      service.IssueService
	moderationService service.ModerationService
	userService       service.UserService
	limiter           RateLimiter
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new instance of the HTTP server.
// A nil limiter disables rate limiting of issue reports.
func NewServer(
	log *slog.Logger,
	is service.IssueService,
	ms service.ModerationService,
	us service.UserService,
	limiter RateLimiter,
) *Server {
	return &Server{
		log:               log,
		issueService:      is,
		moderationService: ms,
		userService:       us,
		limiter:           limiter,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)
	mux.Use(middleware.Recoverer)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())

	api.HandlerWithOptions(s, api.ChiServerOptions{
		BaseRouter:       mux,
		Middlewares:      []api.MiddlewareFunc{s.rateLimit},
		ErrorHandlerFunc: s.handleParamError,
	})

	return mux
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

func (s *Server) respondText(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	if _, err := io.WriteString(w, text); err != nil {
		s.log.Error("failed to write response", sl.Err(err))
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, api.Error{Error: message})
}

// respondAPIError sends a structured error response with a machine readable code.
func (s *Server) respondAPIError(w http.ResponseWriter, code int, apiCode api.APIErrorErrorCode, message string) {
	var errResp api.APIError
	errResp.Error.Code = apiCode
	errResp.Error.Message = message

	s.respond(w, code, errResp)
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var (
		validationErr *validation.ValidationError
		photosErr     *apperrors.TooManyPhotosError
		fieldErr      *apperrors.FieldError
		paramErr      *invalidParamError
		userExistsErr *apperrors.UserAlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("request validation failed", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", apperrors.ErrValidation, validationErr.Error()))
	case errors.As(err, &photosErr):
		log.Warn("request validation failed", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", apperrors.ErrValidation, photosErr.Error()))
	case errors.As(err, &fieldErr):
		log.Warn("request validation failed", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", apperrors.ErrValidation, fieldErr.Error()))
	case errors.As(err, &paramErr):
		log.Warn("invalid request parameter", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, paramErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("invalid request body", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn("resource not found", sl.Err(err))
		s.respondAPIError(w, http.StatusNotFound, api.NOTFOUND, "resource not found")
	case errors.As(err, &userExistsErr):
		log.Warn("resource already exists", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.ALREADYEXISTS, "user with this username already exists")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		log.Warn("resource already exists", sl.Err(err))
		s.respondAPIError(w, http.StatusConflict, api.ALREADYEXISTS, "resource already exists")
	default:
		log.Error("service error occurred", sl.Err(err))
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
