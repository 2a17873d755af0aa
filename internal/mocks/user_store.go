package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

// MockUserStore implements store.UserStore for testing.
//
// The default implementation keeps users in memory, preserving
// insertion order so FindAll pages deterministically, and enforces
// username uniqueness the way the real store's constraint does. Set a
// function field to override a single method, or an error field to
// make the default implementation fail.
type MockUserStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	FindAllFn       func(ctx context.Context, pageSize, page int) (*store.UserPage, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Data for the default implementation
	Users []*domain.User

	// Error injection for the default implementation
	CreateError  error
	GetByIDError error
	FindAllError error
	UpdateError  error
	DeleteError  error
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	copied := *user
	m.Users = append(m.Users, &copied)
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) FindAll(ctx context.Context, pageSize, page int) (*store.UserPage, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx, pageSize, page)
	}

	if m.FindAllError != nil {
		return nil, m.FindAllError
	}

	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 0 {
		page = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Guard the multiplication: a page index past the last page is an
	// empty page, and page*pageSize must not overflow on huge indexes.
	start := len(m.Users)
	if page <= len(m.Users)/pageSize {
		start = page * pageSize
	}
	if start > len(m.Users) {
		start = len(m.Users)
	}
	end := start + pageSize
	if end < start || end > len(m.Users) {
		end = len(m.Users)
	}

	users := make([]*domain.User, 0, end-start)
	for _, user := range m.Users[start:end] {
		copied := *user
		users = append(users, &copied)
	}

	return &store.UserPage{
		Users:    users,
		Total:    int64(len(m.Users)),
		PageSize: pageSize,
		Page:     page,
	}, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.Users {
		if existing.ID == user.ID {
			copied := *user
			copied.Username = existing.Username
			m.Users[i] = &copied
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, user := range m.Users {
		if user.ID == id {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx returns the same mock; transactions are a no-op in memory.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
