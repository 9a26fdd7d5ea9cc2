package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/repository"
)

type UserService interface {
	CreateUser(ctx context.Context, username string, role domain.Role) (*domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type UserServiceImpl struct {
	BaseService
	userRepo repository.UserRepository
}

func NewUserService(db Transactor, log *slog.Logger, userRepo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		BaseService: NewBaseService(db, log),
		userRepo:    userRepo,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	const op = "internal.service.user.CreateUser"

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &apperrors.FieldError{Field: "username", Reason: "is required"}
	}

	if role == "" {
		role = domain.RoleUser
	}

	if !role.Valid() {
		return nil, &apperrors.FieldError{Field: "role", Reason: fmt.Sprintf("has unknown value '%s'", role)}
	}

	user := &domain.User{Username: username, Role: role}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "internal.service.user.GetUser"

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}
