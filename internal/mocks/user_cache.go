package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

// MockUserCache implements store.UserCache for testing.
//
// The default implementation is a real in-memory cache, so tests can
// assert read-through and eviction behavior, and it counts calls to
// the write-side methods so invalidation can be verified. Error fields
// inject failures per method.
type MockUserCache struct {
	mu sync.Mutex

	users map[uuid.UUID]*domain.User
	pages map[string]*store.UserPage

	// Call counters for the default implementation
	SaveUserCalls        int
	RemoveUserCalls      int
	SavePageCalls        int
	InvalidatePagesCalls int

	// Error injection for the default implementation
	GetUserError         error
	SaveUserError        error
	RemoveUserError      error
	GetPageError         error
	SavePageError        error
	InvalidatePagesError error
}

// NewMockUserCache creates an empty in-memory cache.
func NewMockUserCache() *MockUserCache {
	return &MockUserCache{
		users: make(map[uuid.UUID]*domain.User),
		pages: make(map[string]*store.UserPage),
	}
}

func pageKey(pageSize, page int) string {
	return fmt.Sprintf("%d:%d", pageSize, page)
}

func (m *MockUserCache) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrCacheMiss
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserCache) SaveUser(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.SaveUserCalls++
	m.mu.Unlock()

	if m.SaveUserError != nil {
		return m.SaveUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserCache) RemoveUser(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.RemoveUserCalls++
	m.mu.Unlock()

	if m.RemoveUserError != nil {
		return m.RemoveUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, id)
	return nil
}

func (m *MockUserCache) GetPage(ctx context.Context, pageSize, page int) (*store.UserPage, error) {
	if m.GetPageError != nil {
		return nil, m.GetPageError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pages[pageKey(pageSize, page)]
	if !ok {
		return nil, store.ErrCacheMiss
	}
	return p, nil
}

func (m *MockUserCache) SavePage(ctx context.Context, p *store.UserPage) error {
	m.mu.Lock()
	m.SavePageCalls++
	m.mu.Unlock()

	if m.SavePageError != nil {
		return m.SavePageError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[pageKey(p.PageSize, p.Page)] = p
	return nil
}

func (m *MockUserCache) InvalidatePages(ctx context.Context) error {
	m.mu.Lock()
	m.InvalidatePagesCalls++
	m.mu.Unlock()

	if m.InvalidatePagesError != nil {
		return m.InvalidatePagesError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = make(map[string]*store.UserPage)
	return nil
}

// CachedUser reports the cached record for id, if any.
func (m *MockUserCache) CachedUser(id uuid.UUID) (*domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	return user, ok
}

// CachedPageCount reports how many page entries are currently cached.
func (m *MockUserCache) CachedPageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pages)
}
