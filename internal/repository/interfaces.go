package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/bondflash/internal/models"
)

// ErrNotFound is returned by mutating methods when the target row is absent.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("repository: not found")

// UserRepository handles user progression data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	First(ctx context.Context) (*models.User, error)
	Create(ctx context.Context) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Update loads the user inside a transaction, lets fn mutate it and
	// writes every mutable column back. fn errors roll the transaction back.
	Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error)
}

// ReviewRepository handles spaced-repetition state
type ReviewRepository interface {
	Get(ctx context.Context, id int64) (*models.ReviewItem, error)
	GetByQuestion(ctx context.Context, userID, questionID int64) (*models.ReviewItem, error)
	Insert(ctx context.Context, item models.ReviewItem) (int64, error)
	Update(ctx context.Context, item models.ReviewItem) error
	List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewItem, error)
	CountDue(ctx context.Context, userID int64, now time.Time) (int, error)
}

// AttemptRepository handles quiz and question attempts
type AttemptRepository interface {
	CreateQuiz(ctx context.Context, attempt models.QuizAttempt) (int64, error)
	GetQuiz(ctx context.Context, id int64) (*models.QuizAttempt, error)
	IncrementScore(ctx context.Context, quizID int64) error
	SetTimeSpent(ctx context.Context, quizID int64, seconds *int) error
	InsertQuestionAttempt(ctx context.Context, attempt models.QuestionAttempt) (int64, error)
}

// RitualRepository handles ritual logs
type RitualRepository interface {
	Upsert(ctx context.Context, log models.RitualLog) error
	ForDate(ctx context.Context, userID int64, date string) ([]models.RitualLog, error)
}

// ActivityRepository handles the per-day activity markers streaks are built from
type ActivityRepository interface {
	// Record marks date active and reports whether it was new.
	Record(ctx context.Context, userID int64, date string, frozen bool) (bool, error)
	// Days returns date keys in [from, to], both inclusive, newest first.
	Days(ctx context.Context, userID int64, from, to string) ([]string, error)
	// Freeze spends a streak freeze and records date as frozen, atomically.
	// It reports false when there was no freeze to spend or date is taken.
	Freeze(ctx context.Context, userID int64, date string) (bool, error)
}

// AchievementRepository handles achievement unlocks
type AchievementRepository interface {
	// Unlock reports whether slug was newly unlocked. Unknown slugs are
	// ignored.
	Unlock(ctx context.Context, userID int64, slug string) (bool, error)
	ListUnlocked(ctx context.Context, userID int64) ([]models.UserAchievement, error)
}
