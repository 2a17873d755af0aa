package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/domain"
)

// UserPage is one page of user records together with the total number
// of records in the store. PageSize and Page echo the requested
// parameters so callers can derive page counts.
type UserPage struct {
	Users    []*domain.User
	Total    int64
	PageSize int
	Page     int
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindAll retrieves one page of users ordered by creation time,
	// along with the total record count. A page index beyond the last
	// page yields an empty page, not an error.
	FindAll(ctx context.Context, pageSize, page int) (*UserPage, error)

	// Update modifies an existing user's details. The caller must
	// provide a complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists if the update violates username uniqueness.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
