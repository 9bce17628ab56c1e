package services

import (
	"context"
	"time"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/sm2"
)

// QuizAnswer is one answered question inside a quiz. A nil QuizAttemptID
// starts a new attempt.
type QuizAnswer struct {
	QuizAttemptID  *int64
	LessonID       int64
	QuestionID     int64
	Answer         string
	Correct        bool
	Quality        float64
	TotalQuestions int
}

// ReviewAnswer grades an existing review item outside a quiz.
type ReviewAnswer struct {
	ReviewItemID int64
	// QuestionID, when set, must match the item's question.
	QuestionID   int64
	Answer       string
	Correct      bool
	Quality      float64
}

// DueItem is a review item annotated with its mastery percentage.
type DueItem struct {
	models.ReviewItem
	Mastery int `json:"mastery"`
}

// ReviewService handles answering questions and scheduling their reviews
type ReviewService interface {
	// AnswerQuizQuestion records the answer, schedules the question's
	// review and returns the quiz attempt id.
	AnswerQuizQuestion(ctx context.Context, userID int64, a QuizAnswer) (int64, error)
	AnswerReview(ctx context.Context, userID int64, a ReviewAnswer) (*models.ReviewItem, error)
	DueItems(ctx context.Context, userID int64, limit int) ([]DueItem, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	streaks     StreakService
	cal         Calendar
	batchSize   int
}

// NewReviewService creates a new ReviewService. batchSize bounds DueItems
// when the caller passes no limit.
func NewReviewService(reviewRepo repository.ReviewRepository, attemptRepo repository.AttemptRepository, userRepo repository.UserRepository, streaks StreakService, cal Calendar, batchSize int) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		streaks:     streaks,
		cal:         cal,
		batchSize:   batchSize,
	}
}

func (s *reviewService) AnswerQuizQuestion(ctx context.Context, userID int64, a QuizAnswer) (int64, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering quiz question: user_id=%d, question_id=%d, correct=%t, quality=%.1f", userID, a.QuestionID, a.Correct, a.Quality)

	quizID, err := s.ensureAttempt(ctx, userID, a)
	if err != nil {
		return 0, err
	}

	quality := sm2.ClampQuality(a.Quality)
	if _, err := s.attemptRepo.InsertQuestionAttempt(ctx, models.QuestionAttempt{
		QuizAttemptID: &quizID,
		QuestionID:    a.QuestionID,
		Answer:        a.Answer,
		Correct:       a.Correct,
		Quality:       int(quality),
	}); err != nil {
		log.Error("failed to record question attempt: %v", err)
		return 0, errors.NewInternalError(err)
	}

	if a.Correct {
		if err := s.attemptRepo.IncrementScore(ctx, quizID); err != nil {
			log.Error("failed to increment quiz score: %v", err)
			return 0, toAppError(err, "quiz attempt", quizID)
		}
	}

	item, err := s.reviewRepo.GetByQuestion(ctx, userID, a.QuestionID)
	if err != nil {
		log.Error("failed to load review item: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if item == nil {
		item = &models.ReviewItem{UserID: userID, QuestionID: a.QuestionID}
	}
	if err := s.schedule(ctx, item, a.Quality); err != nil {
		return 0, err
	}

	if err := s.streaks.RecordActivity(ctx, userID); err != nil {
		return 0, err
	}
	return quizID, nil
}

func (s *reviewService) ensureAttempt(ctx context.Context, userID int64, a QuizAnswer) (int64, error) {
	log := logger.FromContext(ctx)

	if a.QuizAttemptID == nil {
		if err := requireUser(ctx, s.userRepo, userID); err != nil {
			return 0, err
		}
		id, err := s.attemptRepo.CreateQuiz(ctx, models.QuizAttempt{
			UserID:   userID,
			LessonID: a.LessonID,
			Total:    a.TotalQuestions,
		})
		if err != nil {
			log.Error("failed to create quiz attempt: %v", err)
			return 0, errors.NewInternalError(err)
		}
		log.Debug("quiz attempt started: id=%d, lesson_id=%d", id, a.LessonID)
		return id, nil
	}

	attempt, err := s.attemptRepo.GetQuiz(ctx, *a.QuizAttemptID)
	if err != nil {
		log.Error("failed to load quiz attempt: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if attempt == nil || attempt.UserID != userID {
		return 0, errors.NewNotFoundError("quiz attempt", *a.QuizAttemptID)
	}
	return attempt.ID, nil
}

func (s *reviewService) AnswerReview(ctx context.Context, userID int64, a ReviewAnswer) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("answering review: user_id=%d, review_item_id=%d, quality=%.1f", userID, a.ReviewItemID, a.Quality)

	item, err := s.reviewRepo.Get(ctx, a.ReviewItemID)
	if err != nil {
		log.Error("failed to load review item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if item == nil || item.UserID != userID {
		return nil, errors.NewNotFoundError("review item", a.ReviewItemID)
	}
	if a.QuestionID != 0 && a.QuestionID != item.QuestionID {
		return nil, errors.NewValidationError("questionId", "does not match the review item")
	}

	if _, err := s.attemptRepo.InsertQuestionAttempt(ctx, models.QuestionAttempt{
		QuestionID: item.QuestionID,
		Answer:     a.Answer,
		Correct:    a.Correct,
		Quality:    int(sm2.ClampQuality(a.Quality)),
	}); err != nil {
		log.Error("failed to record question attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if err := s.schedule(ctx, item, a.Quality); err != nil {
		return nil, err
	}
	if err := s.streaks.RecordActivity(ctx, userID); err != nil {
		return nil, err
	}
	return item, nil
}

// schedule grades item, writes the new state back into it and persists it.
// Items without an id start from the first-encounter state and are inserted.
func (s *reviewService) schedule(ctx context.Context, item *models.ReviewItem, quality float64) error {
	log := logger.FromContext(ctx)

	now := s.cal.Today()
	in := sm2.NewInput(quality)
	if item.ID != 0 {
		in = sm2.Input{
			Quality:        quality,
			EasinessFactor: item.EasinessFactor,
			IntervalDays:   item.IntervalDays,
			Repetitions:    item.Repetitions,
			LapseCount:     item.LapseCount,
		}
	}
	res := sm2.Schedule(in, now)

	item.EasinessFactor = res.EasinessFactor
	item.IntervalDays = res.IntervalDays
	item.Repetitions = res.Repetitions
	item.LapseCount = res.LapseCount
	item.DueAt = res.DueAt
	item.LastReviewedAt = &now

	if item.ID == 0 {
		id, err := s.reviewRepo.Insert(ctx, *item)
		if err != nil {
			log.Error("failed to insert review item: %v", err)
			return errors.NewInternalError(err)
		}
		item.ID = id
	} else if err := s.reviewRepo.Update(ctx, *item); err != nil {
		log.Error("failed to update review item: %v", err)
		return toAppError(err, "review item", item.ID)
	}

	log.Debug("review scheduled: question_id=%d, interval=%d, ease=%.2f, due=%s",
		item.QuestionID, item.IntervalDays, item.EasinessFactor, item.DueAt.Format(time.DateOnly))
	return nil
}

func (s *reviewService) DueItems(ctx context.Context, userID int64, limit int) ([]DueItem, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = s.batchSize
	}
	now := s.cal.Today()
	items, err := s.reviewRepo.List(ctx, models.ReviewFilter{UserID: userID, DueBefore: &now, Limit: limit})
	if err != nil {
		log.Error("failed to list due review items: %v", err)
		return nil, errors.NewInternalError(err)
	}

	due := make([]DueItem, 0, len(items))
	for _, it := range items {
		due = append(due, DueItem{ReviewItem: it, Mastery: sm2.Mastery(it.EasinessFactor)})
	}
	log.Debug("found %d due review items for user %d", len(due), userID)
	return due, nil
}
