package repository

import (
	"foodgram/internal/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeToSelfFailsBeforeTouchingStore(t *testing.T) {
	// The guard runs before any query, so a nil handle proves the insert
	// is never attempted.
	repo := NewSubscriptionRepository(nil)

	err := repo.Subscribe(5, 5)

	assert.True(t, apperrors.IsValidation(err))
	assert.ErrorContains(t, err, "cannot subscribe to yourself")
}
