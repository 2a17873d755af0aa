package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/userhub/userhub/internal/domain"
)

// The domain entity hides the password hash from JSON, so the cache
// wire form must carry it explicitly or updates reading through the
// cache would persist an empty hash.
func TestCachedUserRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "bcrypt-hash",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	got := toCached(user).toDomain()

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.HashedPassword, got.HashedPassword)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, user.UpdatedAt.Equal(got.UpdatedAt))
}

func TestUserKey(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "user:11111111-2222-3333-4444-555555555555", userKey(id))
}
