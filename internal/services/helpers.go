package services

import (
	"context"
	stderrors "errors"

	"github.com/vytor/bondflash/internal/errors"
	"github.com/vytor/bondflash/internal/logger"
	"github.com/vytor/bondflash/internal/repository"
)

// toAppError maps repository failures onto AppErrors. AppErrors raised
// inside update callbacks pass through untouched.
func toAppError(err error, resource string, id any) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NewNotFoundError(resource, id)
	}
	return errors.NewInternalError(err)
}

// requireUser fails with NOT_FOUND when userID has no user row. Writes keyed
// on the user would otherwise surface as foreign-key failures.
func requireUser(ctx context.Context, users repository.UserRepository, userID int64) error {
	u, err := users.Get(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load user %d: %v", userID, err)
		return errors.NewInternalError(err)
	}
	if u == nil {
		return errors.NewNotFoundError("user", userID)
	}
	return nil
}
