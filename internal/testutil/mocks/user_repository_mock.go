package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bondflash/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
// Update applies fn to the *models.User configured as the first return
// value, so expectations can assert on the mutation.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) First(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, fn func(*models.User) error) (*models.User, error) {
	args := m.Called(ctx, id, fn)
	if err := args.Error(1); err != nil || args.Get(0) == nil {
		return nil, err
	}
	u := *args.Get(0).(*models.User)
	u.OwnedThemes = append([]string(nil), u.OwnedThemes...)
	if err := fn(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
