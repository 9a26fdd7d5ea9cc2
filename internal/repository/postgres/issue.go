package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/civictrack/issue-reporter/internal/apperrors"
	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var issueColumns = []string{
	"id", "title", "description", "photos", "category", "latitude", "longitude",
	"status", "anonymous", "user_id", "flag_count", "created_at", "updated_at",
}

type IssueRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.IssueRepository = (*IssueRepository)(nil)

func NewIssueRepository(db *sqlx.DB, log *slog.Logger) *IssueRepository {
	return &IssueRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type issueRow struct {
	domain.Issue
	Photos pq.StringArray `db:"photos"`
}

func (r issueRow) toDomain() domain.Issue {
	issue := r.Issue

	issue.Photos = []string(r.Photos)
	if issue.Photos == nil {
		issue.Photos = []string{}
	}

	return issue
}

func (r *IssueRepository) CreateIssue(ctx context.Context, tx *sqlx.Tx, issue *domain.Issue) error {
	const op = "internal.repository.postgres.CreateIssue"

	photos := issue.Photos
	if photos == nil {
		photos = []string{}
	}

	query, args, err := r.sq.Insert("issues").
		Columns("title", "description", "photos", "category", "latitude", "longitude",
			"status", "anonymous", "user_id", "flag_count").
		Values(issue.Title, issue.Description, pq.Array(photos), issue.Category, issue.Latitude, issue.Longitude,
			issue.Status, issue.Anonymous, issue.UserID, issue.FlagCount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	issue.Photos = photos

	return nil
}

func (r *IssueRepository) GetIssueByIDWithLock(ctx context.Context, tx *sqlx.Tx, issueID int64) (*domain.Issue, error) {
	const op = "internal.repository.postgres.GetIssueByIDWithLock"

	query, args, err := r.sq.Select(issueColumns...).
		From("issues").
		Where(sq.Eq{"id": issueID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row issueRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.IssueNotFoundError{IssueID: issueID})
		}

		return nil, fmt.Errorf("%s: failed to get issue with lock: %w", op, err)
	}

	issue := row.toDomain()

	return &issue, nil
}

func (r *IssueRepository) ListIssues(ctx context.Context, q repository.IssueQuery) ([]domain.Issue, error) {
	const op = "internal.repository.postgres.ListIssues"

	builder := r.sq.Select(issueColumns...).From("issues")

	if q.Status != nil {
		builder = builder.Where(sq.Eq{"status": *q.Status})
	}

	if q.Category != nil {
		builder = builder.Where(sq.Eq{"category": *q.Category})
	}

	if q.ExcludeHidden {
		builder = builder.Where(sq.NotEq{"status": domain.IssueStatusHidden})
	}

	query, args, err := builder.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []issueRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	issues := make([]domain.Issue, len(rows))
	for i, row := range rows {
		issues[i] = row.toDomain()
	}

	r.log.Debug("issues listed", slog.String("op", op), slog.Int("count", len(issues)))

	return issues, nil
}

func (r *IssueRepository) UpdateIssueStatus(ctx context.Context, tx *sqlx.Tx, issueID int64, status domain.IssueStatus) error {
	const op = "internal.repository.postgres.UpdateIssueStatus"

	query, args, err := r.sq.Update("issues").
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": issueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, issueID, query, args)
}

func (r *IssueRepository) UpdateModeration(ctx context.Context, tx *sqlx.Tx, issueID int64, flagCount int, status domain.IssueStatus) error {
	const op = "internal.repository.postgres.UpdateModeration"

	query, args, err := r.sq.Update("issues").
		Set("flag_count", flagCount).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": issueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return r.execUpdate(ctx, tx, op, issueID, query, args)
}

func (r *IssueRepository) execUpdate(ctx context.Context, tx *sqlx.Tx, op string, issueID int64, query string, args []interface{}) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, &apperrors.IssueNotFoundError{IssueID: issueID})
	}

	return nil
}
