package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/errors"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: user not found: 7", errors.NewNotFoundError("user", 7).Error())

	cause := stderrors.New("disk full")
	internal := errors.NewInternalError(cause)
	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", internal.Error())
	assert.ErrorIs(t, internal, cause)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("apply reward: %w", errors.NewNotFoundError("user", 3))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.False(t, errors.IsNotFound(stderrors.New("plain")))
	assert.False(t, errors.IsNotFound(errors.NewBadRequestError("nope")))
}

func TestNewInsufficientFundsError(t *testing.T) {
	err := errors.NewInsufficientFundsError(40, 120)
	assert.Equal(t, errors.ErrCodeInsufficientFunds, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "have 40, need 120")
}
