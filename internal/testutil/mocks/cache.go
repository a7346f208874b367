package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/0xsj/overwatch-pkg/types"

	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/cache"
)

var _ cache.UserCache = (*UserCache)(nil)

// --- UserCache Mock ---

// UserCache is a mock implementation of cache.UserCache.
type UserCache struct {
	mu sync.RWMutex

	users map[string]*model.User

	// Call tracking
	Calls struct {
		Get    int
		Set    int
		Delete int
	}

	// Error injection
	Errors struct {
		Get    error
		Set    error
		Delete error
	}
}

// NewUserCache creates a new mock UserCache.
func NewUserCache() *UserCache {
	return &UserCache{
		users: make(map[string]*model.User),
	}
}

func (m *UserCache) Get(ctx context.Context, userID types.ID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.Get++

	if m.Errors.Get != nil {
		return nil, m.Errors.Get
	}

	user, ok := m.users[userID.String()]
	if !ok {
		return nil, nil // Cache miss
	}
	return user, nil
}

func (m *UserCache) Set(ctx context.Context, user *model.User, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Set++

	if m.Errors.Set != nil {
		return m.Errors.Set
	}

	m.users[user.ID().String()] = user
	return nil
}

func (m *UserCache) Delete(ctx context.Context, userID types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Delete++

	if m.Errors.Delete != nil {
		return m.Errors.Delete
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	delete(m.users, userID.String())
	return nil
}

// Has reports whether the user is cached.
func (m *UserCache) Has(userID types.ID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID.String()]
	return ok
}
