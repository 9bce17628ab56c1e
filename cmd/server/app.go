package main

import (
	"fmt"

	"github.com/vytor/bondflash/internal/api"
	"github.com/vytor/bondflash/internal/config"
	"github.com/vytor/bondflash/internal/db"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/repository/sqlite"
	"github.com/vytor/bondflash/internal/services"
	"github.com/vytor/bondflash/internal/shop"
)

// app holds everything the commands share.
type app struct {
	cfg     config.Config
	log     *logger.Logger
	db      *db.DB
	users   repository.UserRepository
	streaks services.StreakService
	summary services.SummaryService
	server  *api.Server
}

func loadConfig() (config.Config, *logger.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)
	return cfg, log, nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("freeze_sweep_at=%s", cfg.FreezeSweepAt)
	log.Debug("review_batch_size=%d", cfg.ReviewBatchSize)

	catalog, err := shop.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load shop catalog: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cal := services.NewCalendar(cfg.Location())
	users := sqlite.NewUserRepository(database.DB)
	reviews := sqlite.NewReviewRepository(database.DB)
	attempts := sqlite.NewAttemptRepository(database.DB)
	achievements := sqlite.NewAchievementRepository(database.DB)
	rituals := sqlite.NewRitualRepository(database.DB)

	rewardService := services.NewRewardService(users, achievements, nil)
	streakService := services.NewStreakService(sqlite.NewActivityRepository(database.DB), cal)
	summaryService := services.NewSummaryService(users, reviews, achievements, rituals, streakService, cal)

	return &app{
		cfg:     cfg,
		log:     log,
		db:      database,
		users:   users,
		streaks: streakService,
		summary: summaryService,
		server: &api.Server{
			DB:      database,
			Rewards: rewardService,
			Reviews: services.NewReviewService(reviews, attempts, users, streakService, cal, cfg.ReviewBatchSize),
			Quizzes: services.NewQuizService(attempts, rewardService, streakService),
			Rituals: services.NewRitualService(rituals, users, rewardService, streakService, cal),
			Shop:    services.NewShopService(users, catalog),
			Summary: summaryService,
		},
	}, nil
}

func (a *app) Close() {
	a.log.Debug("closing database connection")
	if err := a.db.Close(); err != nil {
		a.log.Error("failed to close database: %v", err)
	}
}
