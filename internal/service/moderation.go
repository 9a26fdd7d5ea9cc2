package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/civictrack/issue-reporter/internal/domain"
	"github.com/civictrack/issue-reporter/internal/repository"
	"github.com/jmoiron/sqlx"
)

type ModerationService interface {
	BanUser(ctx context.Context, userID int64) (*domain.User, error)
}

type ModerationServiceImpl struct {
	BaseService
	userRepo repository.UserRepository
}

func NewModerationService(db Transactor, log *slog.Logger, userRepo repository.UserRepository) *ModerationServiceImpl {
	return &ModerationServiceImpl{
		BaseService: NewBaseService(db, log),
		userRepo:    userRepo,
	}
}

// BanUser marks the user as banned. Banning an already banned user succeeds
// without touching the row.
func (s *ModerationServiceImpl) BanUser(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "internal.service.moderation.BanUser"
	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	var user *domain.User

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		user, err = s.userRepo.GetUserByIDWithLock(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("%s: failed to get user with lock: %w", op, err)
		}

		if user.Banned {
			return nil
		}

		if err := s.userRepo.SetBanned(ctx, tx, userID, true); err != nil {
			return fmt.Errorf("%s: failed to ban user: %w", op, err)
		}

		user.Banned = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("user banned")

	return user, nil
}
