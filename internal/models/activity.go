package models

import "time"

type RitualLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	RitualID  int64     `json:"ritual_id"`
	Date      string    `json:"date"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
}

