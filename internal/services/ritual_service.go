package services

import (
	"context"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/rewards"
)

// RitualService handles logging connection rituals
type RitualService interface {
	LogRitual(ctx context.Context, userID, ritualID int64, shared bool) (*Reward, error)
}

type ritualService struct {
	ritualRepo repository.RitualRepository
	userRepo   repository.UserRepository
	rewards    RewardService
	streaks    StreakService
	cal        Calendar
}

// NewRitualService creates a new RitualService
func NewRitualService(ritualRepo repository.RitualRepository, userRepo repository.UserRepository, rewards RewardService, streaks StreakService, cal Calendar) RitualService {
	return &ritualService{ritualRepo: ritualRepo, userRepo: userRepo, rewards: rewards, streaks: streaks, cal: cal}
}

// LogRitual logs the ritual for today and rewards it. Logging the same ritual
// twice in a day keeps one log but rewards both times.
func (s *ritualService) LogRitual(ctx context.Context, userID, ritualID int64, shared bool) (*Reward, error) {
	log := logger.FromContext(ctx)
	log.Debug("logging ritual: user_id=%d, ritual_id=%d, shared=%t", userID, ritualID, shared)

	if err := requireUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	if err := s.ritualRepo.Upsert(ctx, models.RitualLog{
		UserID:   userID,
		RitualID: ritualID,
		Date:     s.cal.Key(),
		Shared:   shared,
	}); err != nil {
		log.Error("failed to log ritual: %v", err)
		return nil, errors.NewInternalError(err)
	}

	reward, err := s.rewards.Award(ctx, userID, rewards.Event{Kind: rewards.EventRitual, Shared: shared})
	if err != nil {
		return nil, err
	}

	if err := s.streaks.RecordActivity(ctx, userID); err != nil {
		return nil, err
	}
	return reward, nil
}
