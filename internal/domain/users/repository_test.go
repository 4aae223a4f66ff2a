package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// A nil *gorm.DB would panic if reached, so these prove the id check runs first.
func TestRepository_RejectsMalformedIDsBeforeQuerying(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.UpdateSubscriptionStatus(ctx, "", "premium"), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateName(ctx, "42", "x"), ErrNotFound)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.NewString()))
	assert.False(t, validID("user-1"))
}
