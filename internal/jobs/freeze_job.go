package jobs

import (
	"context"

	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/services"
	"github.com/vytor/bondflash/internal/worker"
)

// FreezeJob spends a user's streak freeze when yesterday was missed.
type FreezeJob struct {
	Streaks services.StreakService
	UserID  int64
}

func (j *FreezeJob) Name() string { return "streak_freeze" }

func (j *FreezeJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	applied, err := j.Streaks.ApplyFreeze(ctx, j.UserID)
	if err != nil {
		return err
	}
	if applied {
		log.Info("streak preserved with a freeze")
	}
	return nil
}

// WorkerQueue implements JobQueue on a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	streaks services.StreakService
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, streaks services.StreakService) *WorkerQueue {
	return &WorkerQueue{pool: pool, streaks: streaks}
}

func (q *WorkerQueue) EnqueueFreeze(ctx context.Context, userID int64) error {
	return q.pool.Submit(ctx, &FreezeJob{Streaks: q.streaks, UserID: userID})
}
