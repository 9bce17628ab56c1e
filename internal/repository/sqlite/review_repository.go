package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
)

var reviewColumns = []string{
	"id", "user_id", "question_id", "easiness_factor", "interval_days",
	"repetitions", "lapse_count", "due_at", "last_reviewed_at", "created_at",
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func scanReviewItem(row rowScanner) (*models.ReviewItem, error) {
	var it models.ReviewItem
	var lastReviewed sql.NullTime
	if err := row.Scan(&it.ID, &it.UserID, &it.QuestionID, &it.EasinessFactor, &it.IntervalDays,
		&it.Repetitions, &it.LapseCount, &it.DueAt, &lastReviewed, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.LastReviewedAt = nullTime(lastReviewed)
	return &it, nil
}

func (r *reviewRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query, args, err := sqlBuilder.Select(reviewColumns...).From("review_items").Where(where).ToSql()
	if err != nil {
		log.Error("failed to build review query: %v", err)
		return nil, err
	}

	it, err := scanReviewItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("review item not found: %v", where)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review item: %v", err)
		return nil, err
	}
	return it, nil
}

func (r *reviewRepository) Get(ctx context.Context, id int64) (*models.ReviewItem, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *reviewRepository) GetByQuestion(ctx context.Context, userID, questionID int64) (*models.ReviewItem, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID, "question_id": questionID})
}

func (r *reviewRepository) Insert(ctx context.Context, it models.ReviewItem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review item: user_id=%d, question_id=%d", it.UserID, it.QuestionID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_items (user_id, question_id, easiness_factor, interval_days, repetitions, lapse_count, due_at, last_reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, it.UserID, it.QuestionID, it.EasinessFactor, it.IntervalDays, it.Repetitions, it.LapseCount, it.DueAt.UTC(), utcPtr(it.LastReviewedAt))
	if err != nil {
		log.Error("failed to insert review item: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review item id: %v", err)
		return 0, err
	}
	log.Debug("review item inserted: id=%d", id)
	return id, nil
}

func (r *reviewRepository) Update(ctx context.Context, it models.ReviewItem) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("updating review item: id=%d, interval=%d, ease=%.2f", it.ID, it.IntervalDays, it.EasinessFactor)

	res, err := r.db.ExecContext(ctx, `
UPDATE review_items
SET easiness_factor = ?, interval_days = ?, repetitions = ?, lapse_count = ?, due_at = ?, last_reviewed_at = ?
WHERE id = ?
`, it.EasinessFactor, it.IntervalDays, it.Repetitions, it.LapseCount, it.DueAt.UTC(), utcPtr(it.LastReviewedAt), it.ID)
	if err != nil {
		log.Error("failed to update review item: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, filter models.ReviewFilter) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	query := sqlBuilder.Select(reviewColumns...).From("review_items").Where(squirrel.Eq{"user_id": filter.UserID})
	if filter.DueBefore != nil {
		query = query.Where(squirrel.LtOrEq{"due_at": filter.DueBefore.UTC()})
	}
	// Most overdue first, then hardest.
	query = query.OrderBy("due_at ASC", "easiness_factor ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build review list query: %v", err)
		return nil, err
	}
	log.Debug("listing review items: %s", stmt)

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list review items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.ReviewItem
	for rows.Next() {
		it, err := scanReviewItem(rows)
		if err != nil {
			log.Error("failed to scan review item row: %v", err)
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *reviewRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	stmt, args, err := sqlBuilder.Select("COUNT(*)").From("review_items").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"due_at": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		log.Error("failed to count due review items: %v", err)
		return 0, err
	}
	return n, nil
}
