package services

import (
	"context"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/models"
	"github.com/vytor/bondflash/internal/repository"
	"github.com/vytor/bondflash/internal/shop"
)

// ShopService handles spending sparks
type ShopService interface {
	Items() []shop.Item
	Purchase(ctx context.Context, userID int64, itemID string) (*models.User, error)
}

type shopService struct {
	userRepo repository.UserRepository
	catalog  *shop.Catalog
}

// NewShopService creates a new ShopService
func NewShopService(userRepo repository.UserRepository, catalog *shop.Catalog) ShopService {
	return &shopService{userRepo: userRepo, catalog: catalog}
}

func (s *shopService) Items() []shop.Item {
	return s.catalog.Items()
}

func (s *shopService) Purchase(ctx context.Context, userID int64, itemID string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("purchase: user_id=%d, item=%s", userID, itemID)

	item, ok := s.catalog.Item(itemID)
	if !ok {
		return nil, errors.NewNotFoundError("item", itemID)
	}

	u, err := s.userRepo.Update(ctx, userID, func(u *models.User) error {
		if u.Currency < item.Cost {
			return errors.NewInsufficientFundsError(u.Currency, item.Cost)
		}
		u.Currency -= item.Cost
		item.Grant.Apply(u)
		return nil
	})
	if err != nil {
		log.Warn("purchase of %s by user %d failed: %v", itemID, userID, err)
		return nil, toAppError(err, "user", userID)
	}

	log.Info("purchased %s: user_id=%d, currency=%d", itemID, userID, u.Currency)
	return u, nil
}
