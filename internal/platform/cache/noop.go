package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

var _ store.UserCache = (*NoopCache)(nil)

// NoopCache is the cache-disabled configuration: every lookup misses
// and every write succeeds. The service must behave identically with
// this wired in, since the cache only ever improves latency.
type NoopCache struct{}

// NewNoopCache returns a cache that stores nothing.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, store.ErrCacheMiss
}

func (NoopCache) SaveUser(ctx context.Context, user *domain.User) error {
	return nil
}

func (NoopCache) RemoveUser(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (NoopCache) GetPage(ctx context.Context, pageSize, page int) (*store.UserPage, error) {
	return nil, store.ErrCacheMiss
}

func (NoopCache) SavePage(ctx context.Context, p *store.UserPage) error {
	return nil
}

func (NoopCache) InvalidatePages(ctx context.Context) error {
	return nil
}
