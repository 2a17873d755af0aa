package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/domain"
)

// ErrCacheMiss is returned by cache lookups when the key is absent.
// A miss is not a failure; callers fall through to the store.
var ErrCacheMiss = errors.New("cache miss")

// UserCache fronts single-record lookups (keyed by id) and page
// listings (keyed by page parameters). The cache is an accelerant:
// behavior must be correct with the NoopCache wired in, and
// invalidation is always synchronous within the mutating call.
type UserCache interface {
	// GetUser returns the cached record for id, or ErrCacheMiss.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// SaveUser stores or refreshes the record keyed by its ID.
	SaveUser(ctx context.Context, user *domain.User) error

	// RemoveUser evicts the record for id. Evicting an absent key is
	// not an error.
	RemoveUser(ctx context.Context, id uuid.UUID) error

	// GetPage returns the cached listing page, or ErrCacheMiss.
	GetPage(ctx context.Context, pageSize, page int) (*UserPage, error)

	// SavePage stores one listing page keyed by its parameters.
	SavePage(ctx context.Context, p *UserPage) error

	// InvalidatePages drops the entire page-listing cache. There is
	// no per-page surgical invalidation.
	InvalidatePages(ctx context.Context) error
}
