package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type IssueRepositoryMock struct {
	mock.Mock
}

var _ repository.IssueRepository = (*IssueRepositoryMock)(nil)

func (m *IssueRepositoryMock) CreateIssue(ctx context.Context, tx *sqlx.Tx, issue *domain.Issue) error {
	args := m.Called(ctx, tx, issue)
	return args.Error(0)
}

func (m *IssueRepositoryMock) GetIssueByIDWithLock(ctx context.Context, tx *sqlx.Tx, issueID int64) (*domain.Issue, error) {
	args := m.Called(ctx, tx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Issue), args.Error(1)
}

func (m *IssueRepositoryMock) ListIssues(ctx context.Context, q repository.IssueQuery) ([]domain.Issue, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *IssueRepositoryMock) UpdateIssueStatus(ctx context.Context, tx *sqlx.Tx, issueID int64, status domain.IssueStatus) error {
	args := m.Called(ctx, tx, issueID, status)
	return args.Error(0)
}

func (m *IssueRepositoryMock) UpdateModeration(ctx context.Context, tx *sqlx.Tx, issueID int64, flagCount int, status domain.IssueStatus) error {
	args := m.Called(ctx, tx, issueID, flagCount, status)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByIDWithLock(ctx context.Context, tx *sqlx.Tx, userID int64) (*domain.User, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) SetBanned(ctx context.Context, tx *sqlx.Tx, userID int64, banned bool) error {
	args := m.Called(ctx, tx, userID, banned)
	return args.Error(0)
}

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type notification struct {
	UserID  int64
	Message string
}

// NotifierMock records every delivered notification.
type NotifierMock struct {
	mu   sync.Mutex
	sent []notification
}

var _ Notifier = (*NotifierMock)(nil)

func (m *NotifierMock) Notify(_ context.Context, userID int64, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, notification{UserID: userID, Message: message})
}

func (m *NotifierMock) Sent() []notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]notification(nil), m.sent...)
}
