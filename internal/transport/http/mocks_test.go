package http

import (
	"context"
	"time"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/service"
	"github.com/stretchr/testify/mock"
)

type IssueServiceMock struct {
	mock.Mock
}

var _ service.IssueService = (*IssueServiceMock)(nil)

func (m *IssueServiceMock) ReportIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error) {
	args := m.Called(ctx, issue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) GetFilteredIssues(ctx context.Context, filter domain.IssueFilter) ([]domain.Issue, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) UpdateIssueStatus(ctx context.Context, issueID int64, status domain.IssueStatus) (*domain.Issue, error) {
	args := m.Called(ctx, issueID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueServiceMock) FlagIssue(ctx context.Context, issueID int64) (*domain.Issue, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

type ModerationServiceMock struct {
	mock.Mock
}

var _ service.ModerationService = (*ModerationServiceMock)(nil)

func (m *ModerationServiceMock) BanUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) CreateUser(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type RateLimiterMock struct {
	mock.Mock
}

var _ RateLimiter = (*RateLimiterMock)(nil)

func (m *RateLimiterMock) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
