package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

// UserService orchestrates the user lifecycle: create, read, list,
// partial update and delete. It is stateless and safe for concurrent
// use; all mutable state lives in the store. Failures surface as
// domain.ResourceError values carrying the code and intended HTTP
// status, so this layer never depends on transport concepts.
//
// The cache is read-through on single-record lookups and page
// listings, and evict-on-write: every mutation invalidates the whole
// page-listing cache and refreshes or evicts the single-record entry
// synchronously within the same call. Cache population failures are
// logged and ignored; eviction and refresh failures fail the call,
// since a missed invalidation would serve stale data.
type UserService struct {
	users  store.UserStore
	cache  store.UserCache
	hasher Hasher
	logger *slog.Logger
}

// NewUserService creates a new UserService. Pass a cache.NoopCache to
// run without caching; behavior is identical, only latency differs.
func NewUserService(
	users store.UserStore,
	cache store.UserCache,
	hasher Hasher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		cache:  cache,
		hasher: hasher,
		logger: logger.With("component", "user_service"),
	}
}

// ListUsers retrieves one page of users. Page size and index
// constraints are delegated to the store; an index beyond the last
// page yields an empty page, not an error.
func (s *UserService) ListUsers(ctx context.Context, pageSize, page int) (*store.UserPage, error) {
	cached, err := s.cache.GetPage(ctx, pageSize, page)
	if err == nil {
		s.logger.Debug("page cache hit",
			"page_size", pageSize,
			"page", page)
		return cached, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		s.logger.Warn("page cache lookup failed, falling through to store",
			"error", err,
			"page_size", pageSize,
			"page", page)
	}

	result, err := s.users.FindAll(ctx, pageSize, page)
	if err != nil {
		s.logger.Error("failed to list users",
			"error", err,
			"page_size", pageSize,
			"page", page)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if err := s.cache.SavePage(ctx, result); err != nil {
		s.logger.Warn("failed to populate page cache",
			"error", err,
			"page_size", pageSize,
			"page", page)
	}

	return result, nil
}

// GetUser retrieves a user by ID, read-through the cache. Fails with
// the UserNotFound resource error when no record matches.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	cached, err := s.cache.GetUser(ctx, id)
	if err == nil {
		s.logger.Debug("user cache hit", "user_id", id)
		return cached, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		s.logger.Warn("user cache lookup failed, falling through to store",
			"error", err,
			"user_id", id)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("user not found", "user_id", id)
			return nil, domain.ErrUserNotFound(err)
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.cache.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to populate user cache",
			"error", err,
			"user_id", id)
	}

	return user, nil
}

// CreateUser constructs a new user from the validated request fields
// and persists it. Fails with UserAlreadyExists on a username
// uniqueness violation and CreateUserError on any other store failure.
// Invalidates the page-listing cache within the same call.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		s.logger.Warn("invalid user data on create",
			"error", err,
			"username", username)
		return nil, domain.ErrCreateUser(username, err)
	}

	// Availability pre-check before paying the hashing cost. The
	// unique constraint still backstops the race where the name is
	// taken between this lookup and the insert.
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		s.logger.Debug("username already taken", "username", username)
		return nil, domain.ErrUserAlreadyExists(username, store.ErrUsernameExists)
	} else if !store.IsNotFoundError(err) {
		s.logger.Error("failed to check username availability",
			"error", err,
			"username", username)
		return nil, domain.ErrCreateUser(username, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, domain.ErrCreateUser(username, err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("username already taken", "username", username)
			return nil, domain.ErrUserAlreadyExists(username, err)
		}
		s.logger.Error("failed to create user",
			"error", err,
			"username", username)
		return nil, domain.ErrCreateUser(username, err)
	}

	// A missed populate only costs a later cache miss; a missed page
	// invalidation would keep serving listings without the new record.
	if err := s.cache.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to populate user cache after create",
			"error", err,
			"user_id", user.ID)
	}
	if err := s.cache.InvalidatePages(ctx); err != nil {
		s.logger.Error("failed to invalidate page cache after create",
			"error", err,
			"user_id", user.ID)
		return nil, domain.ErrCreateUser(username, err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// UpdateUser applies merge-patch semantics to an existing user: email
// and password overwrite the stored values iff present and non-empty,
// username is never modifiable. The record is re-fetched first, so
// UserNotFound propagates unchanged for a stale ID. Concurrent updates
// of the same record are last-writer-wins; this layer adds no
// optimistic-lock token. Refreshes the single-record cache entry and
// invalidates the page-listing cache within the same call.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, email, password string) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	// Re-hash only when the password actually changed; bcrypt salts,
	// so an unchanged password would otherwise churn the stored hash.
	if password != "" && s.hasher.Compare(user.HashedPassword, password) != nil {
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			s.logger.Error("failed to hash password",
				"error", err,
				"user_id", id)
			return nil, domain.ErrUpdateUser(id, err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	if err := s.users.Update(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("update violates uniqueness", "user_id", id)
			return nil, domain.ErrUserAlreadyExists(user.Username, err)
		}
		if store.IsNotFoundError(err) {
			// Deleted between the pre-fetch and the write.
			s.logger.Debug("user vanished during update", "user_id", id)
			return nil, domain.ErrUserNotFound(err)
		}
		s.logger.Error("failed to update user",
			"error", err,
			"user_id", id)
		return nil, domain.ErrUpdateUser(id, err)
	}

	// Refresh must land: a stale single-record entry would keep
	// serving the pre-update state. Fall back to eviction, and fail
	// the call if the entry cannot be replaced or removed.
	if err := s.cache.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to refresh user cache after update, evicting",
			"error", err,
			"user_id", id)
		if err := s.cache.RemoveUser(ctx, id); err != nil {
			s.logger.Error("failed to evict user cache after update",
				"error", err,
				"user_id", id)
			return nil, domain.ErrUpdateUser(id, err)
		}
	}
	if err := s.cache.InvalidatePages(ctx); err != nil {
		s.logger.Error("failed to invalidate page cache after update",
			"error", err,
			"user_id", id)
		return nil, domain.ErrUpdateUser(id, err)
	}

	s.logger.Info("user updated", "user_id", id)

	return user, nil
}

// DeleteUser resolves the record (propagating UserNotFound) and
// deletes it. Fails with DeleteUserError on any other failure. Evicts
// the single-record cache entry and invalidates the page-listing
// cache within the same call.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("user vanished during delete", "user_id", id)
			return domain.ErrUserNotFound(err)
		}
		s.logger.Error("failed to delete user",
			"error", err,
			"user_id", id)
		return domain.ErrDeleteUser(id, err)
	}

	if err := s.cache.RemoveUser(ctx, id); err != nil {
		s.logger.Error("failed to evict user cache after delete",
			"error", err,
			"user_id", id)
		return domain.ErrDeleteUser(id, err)
	}
	if err := s.cache.InvalidatePages(ctx); err != nil {
		s.logger.Error("failed to invalidate page cache after delete",
			"error", err,
			"user_id", id)
		return domain.ErrDeleteUser(id, err)
	}

	s.logger.Info("user deleted", "user_id", id)

	return nil
}
