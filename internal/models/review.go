package models

import "time"

// ReviewItem is the spaced-repetition state of one question.
type ReviewItem struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	QuestionID     int64      `json:"question_id"`
	EasinessFactor float64    `json:"easiness_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	LapseCount     int        `json:"lapse_count"`
	DueAt          time.Time  `json:"due_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ReviewFilter struct {
	UserID    int64
	DueBefore *time.Time
	Limit     int
}

type QuizAttempt struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	LessonID  int64     `json:"lesson_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	TimeSpent *int      `json:"time_spent"`
	CreatedAt time.Time `json:"created_at"`
}

type QuestionAttempt struct {
	ID            int64     `json:"id"`
	QuizAttemptID *int64    `json:"quiz_attempt_id"`
	QuestionID    int64     `json:"question_id"`
	Answer        string    `json:"answer"`
	Correct       bool      `json:"correct"`
	Quality       int       `json:"quality"`
	CreatedAt     time.Time `json:"created_at"`
}
