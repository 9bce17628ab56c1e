package api

import (
	"context"

	"github.com/vytor/bondflash/internal/services"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type Server struct {
	DB      HealthChecker
	Rewards services.RewardService
	Reviews services.ReviewService
	Quizzes services.QuizService
	Rituals services.RitualService
	Shop    services.ShopService
	Summary services.SummaryService
}
