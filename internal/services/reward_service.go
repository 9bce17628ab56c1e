package services

import (
	"context"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/rewards"
)

// Reward is an Outcome plus the achievements it unlocked.
type Reward struct {
	rewards.Outcome
	Achievements []string `json:"achievements"`
}

// RewardService persists rewards against a user's progression
type RewardService interface {
	// GetOrCreateUser returns the installation's first user, creating it on
	// first use.
	GetOrCreateUser(ctx context.Context) (*models.User, error)
	// ApplyReward adds xp and sparks to the user and recomputes the level.
	ApplyReward(ctx context.Context, userID int64, xp, sparks int) (rewards.Outcome, error)
	// Award prices ev, applies it and unlocks any achievements it earns.
	Award(ctx context.Context, userID int64, ev rewards.Event) (*Reward, error)
}

type rewardService struct {
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
	calc            *rewards.Calculator
}

// NewRewardService creates a new RewardService. A nil rng uses
// rewards.DefaultRNG.
func NewRewardService(userRepo repository.UserRepository, achievementRepo repository.AchievementRepository, rng rewards.RNG) RewardService {
	return &rewardService{
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		calc:            rewards.NewCalculator(rng),
	}
}

func (s *rewardService) GetOrCreateUser(ctx context.Context) (*models.User, error) {
	log := logger.FromContext(ctx)

	u, err := s.userRepo.First(ctx)
	if err != nil {
		log.Error("failed to load first user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if u != nil {
		return u, nil
	}

	log.Info("no user yet, creating one")
	u, err = s.userRepo.Create(ctx)
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return u, nil
}

func (s *rewardService) ApplyReward(ctx context.Context, userID int64, xp, sparks int) (rewards.Outcome, error) {
	out, _, err := s.applyReward(ctx, userID, xp, sparks)
	return out, err
}

// applyReward adds xp and sparks inside one Update transaction and returns the
// outcome together with the user's XP before the reward.
func (s *rewardService) applyReward(ctx context.Context, userID int64, xp, sparks int) (rewards.Outcome, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("applying reward: user_id=%d, xp=%d, sparks=%d", userID, xp, sparks)

	var (
		out     rewards.Outcome
		priorXP int
	)
	_, err := s.userRepo.Update(ctx, userID, func(u *models.User) error {
		priorXP = u.CurrentXP
		var next rewards.Progression
		next, out = rewards.Apply(progressionOf(u), xp, sparks)
		setProgression(u, next)
		return nil
	})
	if err != nil {
		log.Error("failed to apply reward to user %d: %v", userID, err)
		return rewards.Outcome{}, 0, toAppError(err, "user", userID)
	}
	return out, priorXP, nil
}

func (s *rewardService) Award(ctx context.Context, userID int64, ev rewards.Event) (*Reward, error) {
	log := logger.FromContext(ctx)

	xp, sparks, critical, err := s.calc.Quote(ev)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	out, priorXP, err := s.applyReward(ctx, userID, xp, sparks)
	if err != nil {
		return nil, err
	}
	out.CriticalSuccess = critical

	log.Info("rewarded %s: user_id=%d, xp=%d, sparks=%d, critical=%t, level=%d",
		ev.Kind, userID, out.XPEarned, out.SparksEarned, out.CriticalSuccess, out.Level)

	unlocked, err := s.unlockAchievements(ctx, userID, rewards.Trigger{
		Kind:           ev.Kind,
		CorrectCount:   ev.CorrectCount,
		TotalQuestions: ev.TotalQuestions,
		PriorXP:        priorXP,
	})
	if err != nil {
		return nil, err
	}
	return &Reward{Outcome: out, Achievements: unlocked}, nil
}

func (s *rewardService) unlockAchievements(ctx context.Context, userID int64, t rewards.Trigger) ([]string, error) {
	log := logger.FromContext(ctx)

	owned, err := s.achievementRepo.ListUnlocked(ctx, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	t.Unlocked = make(map[string]bool, len(owned))
	for _, a := range owned {
		t.Unlocked[a.Slug] = true
	}

	unlocked := []string{}
	for _, slug := range rewards.EvaluateAchievements(t) {
		added, err := s.achievementRepo.Unlock(ctx, userID, slug)
		if err != nil {
			log.Error("failed to unlock %s: %v", slug, err)
			return nil, errors.NewInternalError(err)
		}
		if added {
			unlocked = append(unlocked, slug)
		}
	}
	return unlocked, nil
}

func progressionOf(u *models.User) rewards.Progression {
	return rewards.Progression{CurrentXP: u.CurrentXP, Level: u.Level, Currency: u.Currency}
}

func setProgression(u *models.User, p rewards.Progression) {
	u.CurrentXP = p.CurrentXP
	u.Level = p.Level
	u.Currency = p.Currency
}
