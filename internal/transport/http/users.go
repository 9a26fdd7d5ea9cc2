package http

import (
	"net/http"

	"github.com/civictrack/issue-reporter/internal/domain"
)

const userBannedText = "User banned successfully."

func (s *Server) BanUser(w http.ResponseWriter, r *http.Request, userID int64) {
	const op = "internal.transport.http.BanUser"

	if _, err := s.moderationService.BanUser(r.Context(), userID); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondText(w, http.StatusOK, userBannedText)
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.CreateUser"

	var req createUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.userService.CreateUser(r.Context(), req.Username, domain.Role(req.Role))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, user)
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request, userID int64) {
	const op = "internal.transport.http.GetUser"

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, user)
}
