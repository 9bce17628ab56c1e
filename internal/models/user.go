package models

import "time"

// User holds a learner's progression and store-owned unlocks.
type User struct {
	ID                int64     `json:"id"`
	CurrentXP         int       `json:"current_xp"`
	Level             int       `json:"level"`
	Currency          int       `json:"currency"`
	StreakFreezes     int       `json:"streak_freezes"`
	OwnedThemes       []string  `json:"owned_themes"`
	SpicyDiceUnlocked bool      `json:"spicy_dice_unlocked"`
	CreatedAt         time.Time `json:"created_at"`
}

type Achievement struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UserAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}
