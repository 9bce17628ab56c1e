package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
)

// errNoFreeze rolls back a Freeze that has nothing to do.
var errNoFreeze = errors.New("no freeze applied")

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new ActivityRepository implementation
func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Record(ctx context.Context, userID int64, date string, frozen bool) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")

	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO activity_days (user_id, date, frozen) VALUES (?, ?, ?)`, userID, date, frozen)
	if err != nil {
		log.Error("failed to record activity: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Debug("activity recorded: user_id=%d, date=%s, frozen=%t", userID, date, frozen)
	}
	return n > 0, nil
}

func (r *activityRepository) Days(ctx context.Context, userID int64, from, to string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")

	query, args, err := sqlBuilder.Select("date").From("activity_days").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list activity days: %v", err)
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	log.Debug("found %d activity days for user %d in [%s, %s]", len(days), userID, from, to)
	return days, rows.Err()
}

// Freeze spends one of the user's streak freezes and records date as a frozen
// day in the same transaction. It reports false, changing nothing, when the
// user has no freeze left or date is already recorded.
func (r *activityRepository) Freeze(ctx context.Context, userID int64, date string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("activity_repo")

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE users SET streak_freezes = streak_freezes - 1 WHERE id = ? AND streak_freezes > 0`, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errNoFreeze
		}

		res, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO activity_days (user_id, date, frozen) VALUES (?, ?, 1)`, userID, date)
		if err != nil {
			return err
		}
		if n, err = res.RowsAffected(); err != nil {
			return err
		}
		if n == 0 {
			return errNoFreeze
		}
		return nil
	})
	if errors.Is(err, errNoFreeze) {
		log.Debug("no freeze applied: user_id=%d, date=%s", userID, date)
		return false, nil
	}
	if err != nil {
		log.Error("failed to apply freeze: %v", err)
		return false, err
	}
	log.Debug("freeze applied: user_id=%d, date=%s", userID, date)
	return true, nil
}
