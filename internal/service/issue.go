package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/config"
	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/geo"
	"github.com/civictrack/issue-reporter/internal/repository"
	"github.com/jmoiron/sqlx"
)

const (
	MaxDescriptionLength = 2000

	reportedMessage      = "Your issue '%s' has been reported."
	statusUpdatedMessage = "Status of '%s' updated to %s"
)

type IssueService interface {
	ReportIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error)
	GetFilteredIssues(ctx context.Context, filter domain.IssueFilter) ([]domain.Issue, error)
	UpdateIssueStatus(ctx context.Context, issueID int64, status domain.IssueStatus) (*domain.Issue, error)
	FlagIssue(ctx context.Context, issueID int64) (*domain.Issue, error)
}

type IssueServiceImpl struct {
	BaseService
	repo     repository.IssueRepository
	notifier Notifier
	policy   config.Issues
}

func NewIssueService(
	db Transactor,
	log *slog.Logger,
	repo repository.IssueRepository,
	notifier Notifier,
	policy config.Issues,
) *IssueServiceImpl {
	return &IssueServiceImpl{
		BaseService: NewBaseService(db, log),
		repo:        repo,
		notifier:    notifier,
		policy:      policy,
	}
}

func (s *IssueServiceImpl) ReportIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error) {
	const op = "internal.service.issue.ReportIssue"
	log := s.log.With(slog.String("op", op))

	if err := s.validateReport(&issue); err != nil {
		return nil, err
	}

	issue.ID = 0
	issue.Status = domain.IssueStatusReported
	issue.FlagCount = 0

	if issue.Anonymous {
		issue.UserID = nil
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := s.repo.CreateIssue(ctx, tx, &issue); err != nil {
			return fmt.Errorf("%s: failed to create issue: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("issue reported", slog.Int64("issue_id", issue.ID), slog.String("category", string(issue.Category)))

	s.notifyReporter(ctx, &issue, fmt.Sprintf(reportedMessage, issue.Title))

	return &issue, nil
}

func (s *IssueServiceImpl) GetFilteredIssues(ctx context.Context, filter domain.IssueFilter) ([]domain.Issue, error) {
	const op = "internal.service.issue.GetFilteredIssues"

	radius := s.policy.DefaultRadiusKm
	if filter.RadiusKm != nil {
		radius = *filter.RadiusKm
	}

	// HIDDEN is excluded even when it is the requested status.
	issues, err := s.repo.ListIssues(ctx, repository.IssueQuery{
		Status:        filter.Status,
		Category:      filter.Category,
		ExcludeHidden: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list issues: %w", op, err)
	}

	result := make([]domain.Issue, 0, len(issues))

	for _, issue := range issues {
		if issue.Status == domain.IssueStatusHidden {
			continue
		}

		if filter.Status != nil && issue.Status != *filter.Status {
			continue
		}

		if filter.Category != nil && issue.Category != *filter.Category {
			continue
		}

		if filter.HasLocation() && !geo.Within(*filter.Lat, *filter.Lon, issue.Latitude, issue.Longitude, radius) {
			continue
		}

		result = append(result, issue)
	}

	return result, nil
}

func (s *IssueServiceImpl) UpdateIssueStatus(ctx context.Context, issueID int64, status domain.IssueStatus) (*domain.Issue, error) {
	const op = "internal.service.issue.UpdateIssueStatus"
	log := s.log.With(slog.String("op", op), slog.Int64("issue_id", issueID))

	if !status.Valid() {
		return nil, &apperrors.FieldError{Field: "status", Reason: fmt.Sprintf("has unknown value '%s'", status)}
	}

	var (
		issue          *domain.Issue
		previousStatus domain.IssueStatus
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		issue, err = s.repo.GetIssueByIDWithLock(ctx, tx, issueID)
		if err != nil {
			return fmt.Errorf("%s: failed to get issue with lock: %w", op, err)
		}

		if err := s.repo.UpdateIssueStatus(ctx, tx, issueID, status); err != nil {
			return fmt.Errorf("%s: failed to update issue status: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	previousStatus = issue.Status
	issue.Status = status
	issue.UpdatedAt = time.Now().UTC()

	log.Info("issue status updated",
		slog.String("from", string(previousStatus)),
		slog.String("to", string(status)),
	)

	s.notifyReporter(ctx, issue, fmt.Sprintf(statusUpdatedMessage, issue.Title, status))

	return issue, nil
}

func (s *IssueServiceImpl) FlagIssue(ctx context.Context, issueID int64) (*domain.Issue, error) {
	const op = "internal.service.issue.FlagIssue"
	log := s.log.With(slog.String("op", op), slog.Int64("issue_id", issueID))

	var issue *domain.Issue

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		issue, err = s.repo.GetIssueByIDWithLock(ctx, tx, issueID)
		if err != nil {
			return fmt.Errorf("%s: failed to get issue with lock: %w", op, err)
		}

		issue.FlagCount++

		if issue.FlagCount >= s.policy.FlagThreshold {
			issue.Status = domain.IssueStatusHidden
		}

		if err := s.repo.UpdateModeration(ctx, tx, issueID, issue.FlagCount, issue.Status); err != nil {
			return fmt.Errorf("%s: failed to update moderation state: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	issue.UpdatedAt = time.Now().UTC()

	log.Info("issue flagged",
		slog.Int("flag_count", issue.FlagCount),
		slog.String("status", string(issue.Status)),
	)

	return issue, nil
}

func (s *IssueServiceImpl) validateReport(issue *domain.Issue) error {
	if strings.TrimSpace(issue.Title) == "" {
		return &apperrors.FieldError{Field: "title", Reason: "is required"}
	}

	if utf8.RuneCountInString(issue.Description) > MaxDescriptionLength {
		return &apperrors.FieldError{
			Field:  "description",
			Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength),
		}
	}

	if !issue.Category.Valid() {
		return &apperrors.FieldError{Field: "category", Reason: fmt.Sprintf("has unknown value '%s'", issue.Category)}
	}

	if len(issue.Photos) > s.policy.MaxPhotos {
		return &apperrors.TooManyPhotosError{Count: len(issue.Photos), Max: s.policy.MaxPhotos}
	}

	return nil
}

func (s *IssueServiceImpl) notifyReporter(ctx context.Context, issue *domain.Issue, message string) {
	userID, ok := issue.Reporter()
	if !ok {
		return
	}

	s.notifier.Notify(ctx, userID, message)
}
