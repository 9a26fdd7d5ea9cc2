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

const uniqueViolation = "23505"

var userColumns = []string{"id", "username", "role", "banned", "created_at"}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (ur *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	log := ur.log.With(slog.String("op", op), slog.String("username", user.Username))

	query, args, err := ur.sq.Insert("users").
		Columns("username", "role", "banned").
		Values(user.Username, user.Role, user.Banned).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ur.db.QueryRowxContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return &apperrors.UserAlreadyExistsError{Username: user.Username}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))

	return nil
}

func (ur *UserRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.UserNotFoundError{UserID: userID})
		}

		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) GetUserByIDWithLock(ctx context.Context, tx *sqlx.Tx, userID int64) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByIDWithLock"

	query, args, err := ur.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := tx.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.UserNotFoundError{UserID: userID})
		}

		return nil, fmt.Errorf("%s: failed to get user with lock: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) SetBanned(ctx context.Context, tx *sqlx.Tx, userID int64, banned bool) error {
	const op = "internal.repository.postgres.SetBanned"

	query, args, err := ur.sq.Update("users").
		Set("banned", banned).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, &apperrors.UserNotFoundError{UserID: userID})
	}

	return nil
}
