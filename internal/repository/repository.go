// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/jmoiron/sqlx"
)

// IssueQuery narrows the rows loaded by ListIssues. Nil fields are not applied.
type IssueQuery struct {
	Status        *domain.IssueStatus
	Category      *domain.IssueCategory
	ExcludeHidden bool
}

// IssueRepository defines the contract for issue persistence.
type IssueRepository interface {
	// CreateIssue inserts a new issue and fills in its generated ID and timestamps.
	// It is expected to run within a transaction.
	CreateIssue(ctx context.Context, tx *sqlx.Tx, issue *domain.Issue) error

	// GetIssueByIDWithLock retrieves an issue and acquires a row-level lock ("FOR UPDATE").
	// Concurrent read-modify-write cycles on the same issue are serialized by this lock.
	// It returns apperrors.ErrNotFound if the issue does not exist.
	GetIssueByIDWithLock(ctx context.Context, tx *sqlx.Tx, issueID int64) (*domain.Issue, error)

	// ListIssues returns issues matching q ordered by ID.
	ListIssues(ctx context.Context, q IssueQuery) ([]domain.Issue, error)

	// UpdateIssueStatus overwrites the status of an issue.
	UpdateIssueStatus(ctx context.Context, tx *sqlx.Tx, issueID int64, status domain.IssueStatus) error

	// UpdateModeration stores the flag counter and status of an issue in one statement.
	UpdateModeration(ctx context.Context, tx *sqlx.Tx, issueID int64, flagCount int, status domain.IssueStatus) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	// CreateUser inserts a new user.
	// It returns apperrors.ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID retrieves a user.
	// It returns apperrors.ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// GetUserByIDWithLock retrieves a user and locks its row for the transaction.
	GetUserByIDWithLock(ctx context.Context, tx *sqlx.Tx, userID int64) (*domain.User, error)

	// SetBanned updates the banned flag of a user.
	SetBanned(ctx context.Context, tx *sqlx.Tx, userID int64, banned bool) error
}
