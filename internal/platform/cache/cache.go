// Package cache contains the Redis implementation of the user cache,
// plus a no-op implementation for running without a cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

const (
	userPrefix      = "user"
	pagePrefix      = "users_page"
	pageVersionKey  = "users_page:version"
	defaultDuration = 10 * time.Minute
)

var _ store.UserCache = (*userCache)(nil)

type userCache struct {
	client   *redis.Client
	duration time.Duration
}

// NewUserCache returns a Redis-backed user cache. Single records are
// keyed by id. Listing pages are keyed by page parameters under a
// version namespace: invalidating the listing cache is one INCR of the
// version key, which strands every existing page entry until its TTL
// expires. There is no per-page surgical invalidation.
func NewUserCache(client *redis.Client, duration time.Duration) store.UserCache {
	if duration <= 0 {
		duration = defaultDuration
	}
	return &userCache{
		client:   client,
		duration: duration,
	}
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", userPrefix, id)
}

// cachedUser is the wire form of a user record. The domain entity
// hides HashedPassword from JSON, but the update merge path needs the
// full record back from the cache, so the hash is carried explicitly
// here. Cache entries never cross the API boundary.
type cachedUser struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"hashed_password"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCached(user *domain.User) cachedUser {
	return cachedUser{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func (u cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c *userCache) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err == redis.Nil {
		return nil, store.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get user: %w", err)
	}

	var u cachedUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("cache decode user: %w", err)
	}

	return u.toDomain(), nil
}

func (c *userCache) SaveUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(toCached(user))
	if err != nil {
		return fmt.Errorf("cache encode user: %w", err)
	}

	if err := c.client.Set(ctx, userKey(user.ID), data, c.duration).Err(); err != nil {
		return fmt.Errorf("cache save user: %w", err)
	}

	return nil
}

func (c *userCache) RemoveUser(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		return fmt.Errorf("cache remove user: %w", err)
	}
	return nil
}

// cachedPage is the wire form of a listing page.
type cachedPage struct {
	Users    []cachedUser `json:"users"`
	Total    int64        `json:"total"`
	PageSize int          `json:"page_size"`
	Page     int          `json:"page"`
}

func (c *userCache) pageKey(ctx context.Context, pageSize, page int) (string, error) {
	version, err := c.client.Get(ctx, pageVersionKey).Int64()
	if err == redis.Nil {
		version = 0
	} else if err != nil {
		return "", fmt.Errorf("cache page version: %w", err)
	}
	return fmt.Sprintf("%s:%d:%d:%d", pagePrefix, version, pageSize, page), nil
}

func (c *userCache) GetPage(ctx context.Context, pageSize, page int) (*store.UserPage, error) {
	key, err := c.pageKey(ctx, pageSize, page)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, store.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get page: %w", err)
	}

	var p cachedPage
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cache decode page: %w", err)
	}

	users := make([]*domain.User, len(p.Users))
	for i, u := range p.Users {
		users[i] = u.toDomain()
	}

	return &store.UserPage{
		Users:    users,
		Total:    p.Total,
		PageSize: p.PageSize,
		Page:     p.Page,
	}, nil
}

func (c *userCache) SavePage(ctx context.Context, p *store.UserPage) error {
	key, err := c.pageKey(ctx, p.PageSize, p.Page)
	if err != nil {
		return err
	}

	users := make([]cachedUser, len(p.Users))
	for i, u := range p.Users {
		users[i] = toCached(u)
	}

	data, err := json.Marshal(cachedPage{
		Users:    users,
		Total:    p.Total,
		PageSize: p.PageSize,
		Page:     p.Page,
	})
	if err != nil {
		return fmt.Errorf("cache encode page: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.duration).Err(); err != nil {
		return fmt.Errorf("cache save page: %w", err)
	}

	return nil
}

func (c *userCache) InvalidatePages(ctx context.Context) error {
	if err := c.client.Incr(ctx, pageVersionKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate pages: %w", err)
	}
	return nil
}
