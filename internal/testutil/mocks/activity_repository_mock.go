package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bondflash/internal/models"
)

// MockActivityRepository is a mock implementation of repository.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, userID int64, date string, frozen bool) (bool, error) {
	args := m.Called(ctx, userID, date, frozen)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRepository) Days(ctx context.Context, userID int64, from, to string) ([]string, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockActivityRepository) Freeze(ctx context.Context, userID int64, date string) (bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Bool(0), args.Error(1)
}

// MockRitualRepository is a mock implementation of repository.RitualRepository
type MockRitualRepository struct {
	mock.Mock
}

func (m *MockRitualRepository) Upsert(ctx context.Context, log models.RitualLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockRitualRepository) ForDate(ctx context.Context, userID int64, date string) ([]models.RitualLog, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RitualLog), args.Error(1)
}

// MockAchievementRepository is a mock implementation of repository.AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Unlock(ctx context.Context, userID int64, slug string) (bool, error) {
	args := m.Called(ctx, userID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockAchievementRepository) ListUnlocked(ctx context.Context, userID int64) ([]models.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserAchievement), args.Error(1)
}
