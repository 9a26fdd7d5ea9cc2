package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/pkg/api"
)

// invalidParamError reports a path or query parameter that could not be bound.
type invalidParamError struct {
	Name    string
	Missing bool
	Err     error
}

func (e *invalidParamError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing required parameter %s", e.Name)
	}

	return fmt.Sprintf("invalid format for parameter %s", e.Name)
}

func (e *invalidParamError) Unwrap() error { return e.Err }

// handleParamError receives binding failures from the generated router.
func (s *Server) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	const op = "internal.transport.http.handleParamError"

	var (
		formatErr   *api.InvalidParamFormatError
		requiredErr *api.RequiredParamError
		tooManyErr  *api.TooManyValuesForParamError
	)

	paramErr := &invalidParamError{Name: "unknown", Err: err}

	switch {
	case errors.As(err, &formatErr):
		paramErr.Name = formatErr.ParamName
	case errors.As(err, &requiredErr):
		paramErr.Name = requiredErr.ParamName
		paramErr.Missing = true
	case errors.As(err, &tooManyErr):
		paramErr.Name = tooManyErr.ParamName
	}

	s.handleServiceError(w, r, op, paramErr)
}

func issueFilter(params api.ListIssuesParams) (domain.IssueFilter, error) {
	filter := domain.IssueFilter{
		Lat:      params.Lat,
		Lon:      params.Lon,
		RadiusKm: params.RadiusKm,
	}

	if params.Status != nil {
		status := domain.IssueStatus(*params.Status)
		if !status.Valid() {
			return filter, &invalidParamError{Name: "status", Err: fmt.Errorf("unknown issue status '%s'", status)}
		}

		filter.Status = &status
	}

	if params.Category != nil {
		category := domain.IssueCategory(*params.Category)
		if !category.Valid() {
			return filter, &invalidParamError{Name: "category", Err: fmt.Errorf("unknown issue category '%s'", category)}
		}

		filter.Category = &category
	}

	return filter, nil
}
