package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
)

// Scheduler runs the nightly streak-freeze sweep.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     repository.UserRepository
	queue     JobQueue
	at        string
	log       *logger.Logger
}

// NewScheduler creates a Scheduler that sweeps every day at the HH:MM time
// at, in loc.
func NewScheduler(loc *time.Location, at string, users repository.UserRepository, queue JobQueue) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		users:     users,
		queue:     queue,
		at:        at,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the sweep and runs the scheduler in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		if err := s.Sweep(logger.NewContext(ctx, s.log)); err != nil {
			s.log.Error("freeze sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule freeze sweep at %s: %w", s.at, err)
	}

	s.scheduler.StartAsync()
	s.log.Info("freeze sweep scheduled daily at %s", s.at)
	return nil
}

// Stop terminates the scheduler. A sweep in flight finishes submitting.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Sweep enqueues one freeze check per user.
func (s *Scheduler) Sweep(ctx context.Context) error {
	log := logger.FromContext(ctx)

	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	log.Info("sweeping %d users for missed days", len(users))
	for _, u := range users {
		if err := s.queue.EnqueueFreeze(ctx, u.ID); err != nil {
			return fmt.Errorf("enqueue freeze for user %d: %w", u.ID, err)
		}
	}
	return nil
}
