package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/jobs"
	"github.com/vytor/bondflash/internal/worker"
)

type fakeStreaks struct {
	frozen chan int64
}

func (f *fakeStreaks) CurrentStreak(context.Context, int64) (int, error) { return 0, nil }
func (f *fakeStreaks) RecordActivity(context.Context, int64) error       { return nil }
func (f *fakeStreaks) ApplyFreeze(_ context.Context, userID int64) (bool, error) {
	f.frozen <- userID
	return true, nil
}

func TestWorkerQueue_RunsFreezeJobs(t *testing.T) {
	streaks := &fakeStreaks{frozen: make(chan int64, 3)}
	pool := worker.NewPool(2, 3)
	pool.Start(context.Background())

	q := jobs.NewWorkerQueue(pool, streaks)
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, q.EnqueueFreeze(context.Background(), id))
	}
	pool.Stop()
	close(streaks.frozen)

	var got []int64
	for id := range streaks.frozen {
		got = append(got, id)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3}, got)
}
