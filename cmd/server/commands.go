package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/bondflash/internal/db"
	"github.com/vytor/bondflash/internal/jobs"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/worker"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			// Open applies migrations.
			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()
			log.Info("database at %s is up to date", cfg.DBPath)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's progression, streak and achievements as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := logger.NewContext(cmd.Context(), a.log)
			if userID == 0 {
				u, err := a.server.Rewards.GetOrCreateUser(ctx)
				if err != nil {
					return err
				}
				userID = u.ID
			}

			sum, err := a.summary.Summary(ctx, userID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "user id (default: the first user)")
	return cmd
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the streak-freeze sweep once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := logger.NewContext(cmd.Context(), a.log)
			pool := worker.NewPool(a.cfg.WorkerCount, a.cfg.QueueSize)
			pool.Start(context.WithoutCancel(ctx))

			scheduler := jobs.NewScheduler(a.cfg.Location(), a.cfg.FreezeSweepAt, a.users, jobs.NewWorkerQueue(pool, a.streaks))
			err = scheduler.Sweep(ctx)
			pool.Stop()
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}
			return nil
		},
	}
}

