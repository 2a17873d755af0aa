package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/platform/cache"
	"github.com/userhub/userhub/internal/store"
)

// newRedisCache connects to the Redis instance named by
// USERHUB_TEST_REDIS_URL, skipping the test when none is configured.
func newRedisCache(t *testing.T) store.UserCache {
	t.Helper()

	url := os.Getenv("USERHUB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("skipping integration test; set USERHUB_TEST_REDIS_URL to run")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		require.NoError(t, client.Close())
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.FlushDB(ctx).Err())

	return cache.NewUserCache(client, time.Minute)
}

func cacheUser(username string) *domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "bcrypt-hash-" + username,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestRedisCache_UserLifecycle(t *testing.T) {
	userCache := newRedisCache(t)
	ctx := context.Background()

	user := cacheUser("alice")

	_, err := userCache.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	require.NoError(t, userCache.SaveUser(ctx, user))

	got, err := userCache.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.HashedPassword, got.HashedPassword)

	require.NoError(t, userCache.RemoveUser(ctx, user.ID))

	_, err = userCache.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrCacheMiss)
}

func TestRedisCache_PageLifecycle(t *testing.T) {
	userCache := newRedisCache(t)
	ctx := context.Background()

	page := &store.UserPage{
		Users:    []*domain.User{cacheUser("alice"), cacheUser("bob")},
		Total:    2,
		PageSize: 10,
		Page:     0,
	}

	_, err := userCache.GetPage(ctx, 10, 0)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	require.NoError(t, userCache.SavePage(ctx, page))

	got, err := userCache.GetPage(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, got.Users, 2)
	assert.Equal(t, "alice", got.Users[0].Username)
	assert.EqualValues(t, 2, got.Total)

	// Different page parameters are distinct entries.
	_, err = userCache.GetPage(ctx, 5, 0)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	// Invalidation strands every cached page at once.
	require.NoError(t, userCache.InvalidatePages(ctx))
	_, err = userCache.GetPage(ctx, 10, 0)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	// New writes land under the new version and are readable again.
	require.NoError(t, userCache.SavePage(ctx, page))
	_, err = userCache.GetPage(ctx, 10, 0)
	assert.NoError(t, err)
}
