package services

import (
	"context"
	"math"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/rewards"
)

type QuizCompletion struct {
	QuizAttemptID   int64
	CorrectCount    int
	TotalQuestions  int
	DurationSeconds *float64
}

// sanitized clamps counts into range and drops unusable durations, which
// then earn no speed bonus.
func (c QuizCompletion) sanitized() QuizCompletion {
	c.TotalQuestions = max(c.TotalQuestions, 0)
	c.CorrectCount = min(max(c.CorrectCount, 0), c.TotalQuestions)
	if d := c.DurationSeconds; d != nil && (math.IsNaN(*d) || math.IsInf(*d, 0) || *d < 0) {
		c.DurationSeconds = nil
	}
	return c
}

// QuizService handles quiz completion
type QuizService interface {
	CompleteQuiz(ctx context.Context, userID int64, c QuizCompletion) (*Reward, error)
}

type quizService struct {
	attemptRepo repository.AttemptRepository
	rewards     RewardService
	streaks     StreakService
}

// NewQuizService creates a new QuizService
func NewQuizService(attemptRepo repository.AttemptRepository, rewards RewardService, streaks StreakService) QuizService {
	return &quizService{attemptRepo: attemptRepo, rewards: rewards, streaks: streaks}
}

func (s *quizService) CompleteQuiz(ctx context.Context, userID int64, c QuizCompletion) (*Reward, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing quiz: user_id=%d, attempt_id=%d, correct=%d/%d", userID, c.QuizAttemptID, c.CorrectCount, c.TotalQuestions)

	c = c.sanitized()

	attempt, err := s.attemptRepo.GetQuiz(ctx, c.QuizAttemptID)
	if err != nil {
		log.Error("failed to load quiz attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, errors.NewNotFoundError("quiz attempt", c.QuizAttemptID)
	}

	if c.DurationSeconds != nil {
		spent := int(math.Round(*c.DurationSeconds))
		if err := s.attemptRepo.SetTimeSpent(ctx, attempt.ID, &spent); err != nil {
			log.Error("failed to store time spent: %v", err)
			return nil, toAppError(err, "quiz attempt", attempt.ID)
		}
	}

	reward, err := s.rewards.Award(ctx, userID, rewards.Event{
		Kind:            rewards.EventQuiz,
		CorrectCount:    c.CorrectCount,
		TotalQuestions:  c.TotalQuestions,
		DurationSeconds: c.DurationSeconds,
	})
	if err != nil {
		return nil, err
	}

	if err := s.streaks.RecordActivity(ctx, userID); err != nil {
		return nil, err
	}
	return reward, nil
}
