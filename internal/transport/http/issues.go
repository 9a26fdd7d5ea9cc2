package http

import (
	"net/http"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/pkg/api"
)

const issueFlaggedText = "Issue flagged successfully."

func (s *Server) ReportIssue(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ReportIssue"

	var req reportIssueRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	issue, err := s.issueService.ReportIssue(r.Context(), req.toDomain())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	issuesReportedTotal.WithLabelValues(string(issue.Category)).Inc()

	s.respond(w, http.StatusOK, issue)
}

func (s *Server) ListIssues(w http.ResponseWriter, r *http.Request, params api.ListIssuesParams) {
	const op = "internal.transport.http.ListIssues"

	filter, err := issueFilter(params)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	issues, err := s.issueService.GetFilteredIssues(r.Context(), filter)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if issues == nil {
		issues = []domain.Issue{}
	}

	s.respond(w, http.StatusOK, issues)
}

func (s *Server) UpdateIssueStatus(w http.ResponseWriter, r *http.Request, id api.IssueID, params api.UpdateIssueStatusParams) {
	const op = "internal.transport.http.UpdateIssueStatus"

	issue, err := s.issueService.UpdateIssueStatus(r.Context(), id, domain.IssueStatus(params.Status))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, issue)
}

func (s *Server) FlagIssue(w http.ResponseWriter, r *http.Request, id api.IssueID) {
	const op = "internal.transport.http.FlagIssue"

	issue, err := s.issueService.FlagIssue(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	issueFlagsTotal.Inc()
	if issue.Status == domain.IssueStatusHidden {
		hiddenIssueFlagsTotal.Inc()
	}

	s.respondText(w, http.StatusOK, issueFlaggedText)
}
