package services

import (
	"context"
	"time"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/streak"
)

// StreakService records daily activity and derives streaks from it
type StreakService interface {
	CurrentStreak(ctx context.Context, userID int64) (int, error)
	// RecordActivity marks today active. Repeats on the same day are no-ops.
	RecordActivity(ctx context.Context, userID int64) error
	// ApplyFreeze spends one streak freeze to cover a missed yesterday and
	// reports whether it did.
	ApplyFreeze(ctx context.Context, userID int64) (bool, error)
}

type streakService struct {
	activityRepo repository.ActivityRepository
	cal          Calendar
}

// NewStreakService creates a new StreakService
func NewStreakService(activityRepo repository.ActivityRepository, cal Calendar) StreakService {
	return &streakService{activityRepo: activityRepo, cal: cal}
}

func (s *streakService) CurrentStreak(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	today := s.cal.Today()
	days, err := s.days(ctx, userID, today, streak.MaxDays)
	if err != nil {
		log.Error("failed to load activity for user %d: %v", userID, err)
		return 0, errors.NewInternalError(err)
	}
	return streak.Calculate(days, today), nil
}

func (s *streakService) RecordActivity(ctx context.Context, userID int64) error {
	key := s.cal.Key()
	if _, err := s.activityRepo.Record(ctx, userID, key, false); err != nil {
		logger.FromContext(ctx).Error("failed to record activity %s for user %d: %v", key, userID, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *streakService) ApplyFreeze(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	today := s.cal.Today()
	days, err := s.days(ctx, userID, today, 3)
	if err != nil {
		log.Error("failed to load recent activity for user %d: %v", userID, err)
		return false, errors.NewInternalError(err)
	}
	if !streak.MissedYesterday(days, today) {
		return false, nil
	}

	yesterday := streak.Key(today.AddDate(0, 0, -1))
	applied, err := s.activityRepo.Freeze(ctx, userID, yesterday)
	if err != nil {
		log.Error("failed to apply streak freeze for user %d: %v", userID, err)
		return false, errors.NewInternalError(err)
	}
	if !applied {
		log.Debug("user %d missed yesterday with no freezes left", userID)
		return false, nil
	}
	log.Info("streak freeze applied: user_id=%d, date=%s", userID, yesterday)
	return true, nil
}

// days loads the n most recent date keys ending at today.
func (s *streakService) days(ctx context.Context, userID int64, today time.Time, n int) (streak.Set, error) {
	from := streak.Key(today.AddDate(0, 0, -(n - 1)))
	keys, err := s.activityRepo.Days(ctx, userID, from, streak.Key(today))
	if err != nil {
		return nil, err
	}
	return streak.NewSet(keys...), nil
}
