package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/services"
)

type quizAnswerRequest struct {
	QuizAttemptID  *int64  `json:"quizAttemptId" validate:"omitempty,gt=0"`
	LessonID       int64   `json:"lessonId" validate:"required"`
	QuestionID     int64   `json:"questionId" validate:"required"`
	Answer         *string `json:"answer" validate:"required"`
	Correct        bool    `json:"correct"`
	Quality        float64 `json:"quality"`
	TotalQuestions int     `json:"totalQuestions" validate:"gte=0"`
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	quizID, err := s.Reviews.AnswerQuizQuestion(r.Context(), userIDFromContext(r.Context()), services.QuizAnswer{
		QuizAttemptID:  req.QuizAttemptID,
		LessonID:       req.LessonID,
		QuestionID:     req.QuestionID,
		Answer:         *req.Answer,
		Correct:        req.Correct,
		Quality:        req.Quality,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int64{"quizAttemptId": quizID})
}

type quizCompleteRequest struct {
	QuizAttemptID   int64    `json:"quizAttemptId" validate:"required"`
	CorrectCount    int      `json:"correctCount"`
	TotalQuestions  *int     `json:"totalQuestions" validate:"required"`
	DurationSeconds *float64 `json:"durationSeconds"`
}

func (s *Server) handleQuizComplete(w http.ResponseWriter, r *http.Request) {
	var req quizCompleteRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	reward, err := s.Quizzes.CompleteQuiz(r.Context(), userIDFromContext(r.Context()), services.QuizCompletion{
		QuizAttemptID:   req.QuizAttemptID,
		CorrectCount:    req.CorrectCount,
		TotalQuestions:  *req.TotalQuestions,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reward)
}

type reviewAnswerRequest struct {
	ReviewItemID int64   `json:"reviewItemId" validate:"required"`
	QuestionID   int64   `json:"questionId" validate:"omitempty,gt=0"`
	Answer       *string `json:"answer" validate:"required"`
	Correct      bool    `json:"correct"`
	Quality      float64 `json:"quality"`
}

func (s *Server) handleReviewAnswer(w http.ResponseWriter, r *http.Request) {
	var req reviewAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	_, err := s.Reviews.AnswerReview(r.Context(), userIDFromContext(r.Context()), services.ReviewAnswer{
		ReviewItemID: req.ReviewItemID,
		QuestionID:   req.QuestionID,
		Answer:       *req.Answer,
		Correct:      req.Correct,
		Quality:      req.Quality,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleReviewDue(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	items, err := s.Reviews.DueItems(r.Context(), userIDFromContext(r.Context()), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": items})
}

type ritualLogRequest struct {
	RitualID int64 `json:"ritualId" validate:"required"`
	Shared   bool  `json:"shared"`
}

func (s *Server) handleRitualLog(w http.ResponseWriter, r *http.Request) {
	var req ritualLogRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	reward, err := s.Rituals.LogRitual(r.Context(), userIDFromContext(r.Context()), req.RitualID, req.Shared)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true, "reward": reward})
}
