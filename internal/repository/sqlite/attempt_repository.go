package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CreateQuiz(ctx context.Context, a models.QuizAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("creating quiz attempt: user_id=%d, lesson_id=%d, total=%d", a.UserID, a.LessonID, a.Total)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (user_id, lesson_id, score, total, time_spent)
VALUES (?, ?, ?, ?, ?)
`, a.UserID, a.LessonID, a.Score, a.Total, a.TimeSpent)
	if err != nil {
		log.Error("failed to create quiz attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *attemptRepository) GetQuiz(ctx context.Context, id int64) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	var a models.QuizAttempt
	var spent sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, lesson_id, score, total, time_spent, created_at
FROM quiz_attempts WHERE id = ?
`, id).Scan(&a.ID, &a.UserID, &a.LessonID, &a.Score, &a.Total, &spent, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("quiz attempt not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz attempt: %v", err)
		return nil, err
	}
	a.TimeSpent = nullInt(spent)
	return &a, nil
}

func (r *attemptRepository) IncrementScore(ctx context.Context, quizID int64) error {
	return r.exec(ctx, `UPDATE quiz_attempts SET score = score + 1 WHERE id = ?`, quizID)
}

func (r *attemptRepository) SetTimeSpent(ctx context.Context, quizID int64, seconds *int) error {
	return r.exec(ctx, `UPDATE quiz_attempts SET time_spent = ? WHERE id = ?`, seconds, quizID)
}

func (r *attemptRepository) exec(ctx context.Context, query string, args ...any) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update quiz attempt: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *attemptRepository) InsertQuestionAttempt(ctx context.Context, a models.QuestionAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("recording question attempt: question_id=%d, correct=%t, quality=%d", a.QuestionID, a.Correct, a.Quality)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO question_attempts (quiz_attempt_id, question_id, answer, correct, quality)
VALUES (?, ?, ?, ?, ?)
`, a.QuizAttemptID, a.QuestionID, a.Answer, a.Correct, a.Quality)
	if err != nil {
		log.Error("failed to insert question attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
