package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new AchievementRepository implementation
func NewAchievementRepository(db *sql.DB) repository.AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Unlock(ctx context.Context, userID int64, slug string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	var achievementID int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM achievements WHERE slug = ?`, slug).Scan(&achievementID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("unknown achievement slug: %s", slug)
		return false, nil
	}
	if err != nil {
		log.Error("failed to look up achievement %s: %v", slug, err)
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO user_achievements (user_id, achievement_id) VALUES (?, ?)`, userID, achievementID)
	if err != nil {
		log.Error("failed to unlock achievement %s: %v", slug, err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		log.Info("achievement unlocked: user_id=%d, slug=%s", userID, slug)
	}
	return n > 0, nil
}

func (r *achievementRepository) ListUnlocked(ctx context.Context, userID int64) ([]models.UserAchievement, error) {
	log := logger.FromContext(ctx).WithPrefix("achievement_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.slug, a.title, a.description, ua.unlocked_at
FROM user_achievements ua
JOIN achievements a ON a.id = ua.achievement_id
WHERE ua.user_id = ?
ORDER BY ua.unlocked_at ASC, a.id ASC
`, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.UserAchievement
	for rows.Next() {
		var ua models.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.Slug, &ua.Title, &ua.Description, &ua.UnlockedAt); err != nil {
			return nil, err
		}
		out = append(out, ua)
	}
	return out, rows.Err()
}
