package services

import (
	"context"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/rewards"
)

// Summary is a user's progression at a glance.
type Summary struct {
	UserID            int64                    `json:"userId"`
	CurrentXP         int                      `json:"currentXP"`
	Level             int                      `json:"level"`
	Title             string                   `json:"title"`
	LevelFloorXP      int                      `json:"levelFloorXP"`
	NextLevelXP       int                      `json:"nextLevelXP"`
	Currency          int                      `json:"currency"`
	StreakDays        int                      `json:"streakDays"`
	StreakFreezes     int                      `json:"streakFreezes"`
	DueReviews        int                      `json:"dueReviews"`
	OwnedThemes       []string                 `json:"ownedThemes"`
	SpicyDiceUnlocked bool                     `json:"spicyDiceUnlocked"`
	Achievements      []models.UserAchievement `json:"achievements"`
	TodayRituals      []models.RitualLog       `json:"todayRituals"`
}

// SummaryService aggregates progression, streak and review state
type SummaryService interface {
	Summary(ctx context.Context, userID int64) (*Summary, error)
}

type summaryService struct {
	userRepo        repository.UserRepository
	reviewRepo      repository.ReviewRepository
	achievementRepo repository.AchievementRepository
	ritualRepo      repository.RitualRepository
	streaks         StreakService
	cal             Calendar
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, achievementRepo repository.AchievementRepository, ritualRepo repository.RitualRepository, streaks StreakService, cal Calendar) SummaryService {
	return &summaryService{
		userRepo:        userRepo,
		reviewRepo:      reviewRepo,
		achievementRepo: achievementRepo,
		ritualRepo:      ritualRepo,
		streaks:         streaks,
		cal:             cal,
	}
}

func (s *summaryService) Summary(ctx context.Context, userID int64) (*Summary, error) {
	log := logger.FromContext(ctx)

	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	days, err := s.streaks.CurrentStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	due, err := s.reviewRepo.CountDue(ctx, userID, s.cal.Today())
	if err != nil {
		log.Error("failed to count due reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}

	achievements, err := s.achievementRepo.ListUnlocked(ctx, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if achievements == nil {
		achievements = []models.UserAchievement{}
	}

	rituals, err := s.ritualRepo.ForDate(ctx, userID, s.cal.Key())
	if err != nil {
		log.Error("failed to list today's rituals: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rituals == nil {
		rituals = []models.RitualLog{}
	}

	return &Summary{
		UserID:            u.ID,
		CurrentXP:         u.CurrentXP,
		Level:             u.Level,
		Title:             rewards.LevelTitle(u.Level),
		LevelFloorXP:      rewards.XPForLevel(u.Level),
		NextLevelXP:       rewards.XPForNextLevel(u.Level),
		Currency:          u.Currency,
		StreakDays:        days,
		StreakFreezes:     u.StreakFreezes,
		DueReviews:        due,
		OwnedThemes:       u.OwnedThemes,
		SpicyDiceUnlocked: u.SpicyDiceUnlocked,
		Achievements:      achievements,
		TodayRituals:      rituals,
	}, nil
}
