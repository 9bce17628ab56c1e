package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bondflash/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateQuiz(ctx context.Context, attempt models.QuizAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) GetQuiz(ctx context.Context, id int64) (*models.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) IncrementScore(ctx context.Context, quizID int64) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

func (m *MockAttemptRepository) SetTimeSpent(ctx context.Context, quizID int64, seconds *int) error {
	args := m.Called(ctx, quizID, seconds)
	return args.Error(0)
}

func (m *MockAttemptRepository) InsertQuestionAttempt(ctx context.Context, attempt models.QuestionAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}
