package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
)

const userColumns = `id, current_xp, level, currency, streak_freezes, owned_themes, spicy_dice_unlocked, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var themes string
	if err := row.Scan(&u.ID, &u.CurrentXP, &u.Level, &u.Currency, &u.StreakFreezes, &themes, &u.SpicyDiceUnlocked, &u.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(themes), &u.OwnedThemes); err != nil {
		return nil, err
	}
	if u.OwnedThemes == nil {
		u.OwnedThemes = []string{}
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) First(ctx context.Context) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get first user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user")

	u, err := scanUser(r.db.QueryRowContext(ctx, `
INSERT INTO users (current_xp, level, currency)
VALUES (0, 1, 0)
RETURNING `+userColumns))
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, err
	}
	log.Debug("user created: id=%d", u.ID)
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, *u)
	}
	log.Debug("found %d users", len(users))
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("updating user: id=%d", id)

	var updated *models.User
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		u, err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := fn(u); err != nil {
			return err
		}

		themes, err := json.Marshal(u.OwnedThemes)
		if err != nil {
			return err
		}
		if u.OwnedThemes == nil {
			themes = []byte("[]")
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE users
SET current_xp = ?, level = ?, currency = ?, streak_freezes = ?, owned_themes = ?, spicy_dice_unlocked = ?
WHERE id = ?
`, u.CurrentXP, u.Level, u.Currency, u.StreakFreezes, string(themes), u.SpicyDiceUnlocked, id); err != nil {
			log.Error("failed to write user %d: %v", id, err)
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("user updated: id=%d, xp=%d, level=%d, currency=%d", updated.ID, updated.CurrentXP, updated.Level, updated.Currency)
	return updated, nil
}
