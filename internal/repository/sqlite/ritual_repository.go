package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
)

type ritualRepository struct {
	db *sql.DB
}

// NewRitualRepository creates a new RitualRepository implementation
func NewRitualRepository(db *sql.DB) repository.RitualRepository {
	return &ritualRepository{db: db}
}

// Upsert keeps one log per ritual and day; logging again only updates shared.
func (r *ritualRepository) Upsert(ctx context.Context, l models.RitualLog) error {
	log := logger.FromContext(ctx).WithPrefix("ritual_repo")
	log.Debug("logging ritual: user_id=%d, ritual_id=%d, date=%s, shared=%t", l.UserID, l.RitualID, l.Date, l.Shared)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO ritual_logs (user_id, ritual_id, date, shared)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id, ritual_id, date) DO UPDATE SET shared = excluded.shared
`, l.UserID, l.RitualID, l.Date, l.Shared)
	if err != nil {
		log.Error("failed to upsert ritual log: %v", err)
	}
	return err
}

func (r *ritualRepository) ForDate(ctx context.Context, userID int64, date string) ([]models.RitualLog, error) {
	log := logger.FromContext(ctx).WithPrefix("ritual_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, ritual_id, date, shared, created_at
FROM ritual_logs
WHERE user_id = ? AND date = ?
ORDER BY ritual_id ASC
`, userID, date)
	if err != nil {
		log.Error("failed to list ritual logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var logs []models.RitualLog
	for rows.Next() {
		var l models.RitualLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.RitualID, &l.Date, &l.Shared, &l.CreatedAt); err != nil {
			log.Error("failed to scan ritual log: %v", err)
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
