package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/jobs"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/testutil"
	"github.com/vytor/bondflash/internal/testutil/mocks"
)

func TestSweep_EnqueuesEveryUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("List", mock.Anything).Return([]models.User{{ID: 1}, {ID: 2}, {ID: 5}}, nil)

	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueFreeze", mock.Anything, mock.AnythingOfType("int64")).Return(nil)

	s := jobs.NewScheduler(time.UTC, "00:05", users, queue)
	require.NoError(t, s.Sweep(testutil.Quiet()))

	queue.AssertNumberOfCalls(t, "EnqueueFreeze", 3)
	queue.AssertCalled(t, "EnqueueFreeze", mock.Anything, int64(5))
}

func TestSweep_StopsOnQueueError(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("List", mock.Anything).Return([]models.User{{ID: 1}, {ID: 2}}, nil)

	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueFreeze", mock.Anything, int64(1)).Return(errors.New("queue closed"))

	s := jobs.NewScheduler(time.UTC, "00:05", users, queue)
	err := s.Sweep(testutil.Quiet())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "user 1")
	queue.AssertNotCalled(t, "EnqueueFreeze", mock.Anything, int64(2))
}

func TestStart_RejectsBadTime(t *testing.T) {
	s := jobs.NewScheduler(time.UTC, "25:99", new(mocks.MockUserRepository), new(mocks.MockJobQueue))
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_Stop(t *testing.T) {
	s := jobs.NewScheduler(time.UTC, "03:30", new(mocks.MockUserRepository), new(mocks.MockJobQueue))
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}
