package services_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/vytor/bondflash/internal/repository/sqlite"
	"github.com/vytor/bondflash/internal/services"
	"github.com/vytor/bondflash/internal/testutil"
)

// stack wires every service onto an in-memory database with a movable
// clock.
type stack struct {
	db      *sql.DB
	now     time.Time
	userID  int64
	rewards services.RewardService
	streaks services.StreakService
	reviews services.ReviewService
	quizzes services.QuizService
	rituals services.RitualService
	summary services.SummaryService
}

func newStack(t *testing.T, rng float64) *stack {
	t.Helper()

	s := &stack{
		db:  testutil.NewTestDB(t),
		now: time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC),
	}
	t.Cleanup(func() { testutil.MustClose(t, s.db) })

	cal := services.Calendar{Now: func() time.Time { return s.now }, Location: time.UTC}
	users := sqlite.NewUserRepository(s.db)
	reviews := sqlite.NewReviewRepository(s.db)
	attempts := sqlite.NewAttemptRepository(s.db)
	achievements := sqlite.NewAchievementRepository(s.db)
	rituals := sqlite.NewRitualRepository(s.db)

	s.rewards = services.NewRewardService(users, achievements, fixedRNG(rng))
	s.streaks = services.NewStreakService(sqlite.NewActivityRepository(s.db), cal)
	s.reviews = services.NewReviewService(reviews, attempts, users, s.streaks, cal, 20)
	s.quizzes = services.NewQuizService(attempts, s.rewards, s.streaks)
	s.rituals = services.NewRitualService(rituals, users, s.rewards, s.streaks, cal)
	s.summary = services.NewSummaryService(users, reviews, achievements, rituals, s.streaks, cal)

	u, err := s.rewards.GetOrCreateUser(testutil.Quiet())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	s.userID = u.ID
	return s
}

func (s *stack) advanceDays(n int) {
	s.now = s.now.AddDate(0, 0, n)
}
