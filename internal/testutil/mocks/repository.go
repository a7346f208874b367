// Package mocks provides mock implementations of ports for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/0xsj/overwatch-pkg/types"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/domain/model"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// --- UserRepository Mock ---

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mu sync.RWMutex

	// Storage
	users map[string]*model.User // by ID
	byDID map[string]string      // DID -> ID

	// Updated holds every aggregate passed to Update, in order.
	Updated []*model.User

	// OnUpdate runs after a successful Update.
	OnUpdate func()

	// Call tracking
	Calls struct {
		Create    int
		Update    int
		GetByID   int
		FindByDID int
		Delete    int
	}

	// Error injection
	Errors struct {
		Create    error
		Update    error
		GetByID   error
		FindByDID error
		Delete    error
	}
}

// NewUserRepository creates a new mock UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*model.User),
		byDID: make(map[string]string),
	}
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Create++

	if m.Errors.Create != nil {
		return m.Errors.Create
	}

	id := user.ID().String()
	if _, ok := m.users[id]; ok {
		return domainerror.ErrUserAlreadyExists
	}
	m.users[id] = user
	m.byDID[user.DID().String()] = id

	return nil
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Update++

	if m.Errors.Update != nil {
		return m.Errors.Update
	}

	id := user.ID().String()
	if _, ok := m.users[id]; !ok {
		return domainerror.ErrUserNotFound
	}

	m.users[id] = user
	m.Updated = append(m.Updated, user)

	if m.OnUpdate != nil {
		m.OnUpdate()
	}
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id types.ID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.GetByID++

	if m.Errors.GetByID != nil {
		return nil, m.Errors.GetByID
	}

	user, ok := m.users[id.String()]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (m *UserRepository) FindByDID(ctx context.Context, did string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.Calls.FindByDID++

	if m.Errors.FindByDID != nil {
		return nil, m.Errors.FindByDID
	}

	id, ok := m.byDID[did]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return m.users[id], nil
}

func (m *UserRepository) Delete(ctx context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Delete++

	if m.Errors.Delete != nil {
		return m.Errors.Delete
	}

	user, ok := m.users[id.String()]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	delete(m.byDID, user.DID().String())
	delete(m.users, id.String())

	return nil
}

// --- Test Helpers ---

// AddUser seeds the mock without counting a Create call.
func (m *UserRepository) AddUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := user.ID().String()
	m.users[id] = user
	m.byDID[user.DID().String()] = id
}

// Count returns the number of stored users.
func (m *UserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// Reset clears all data and call counts.
func (m *UserRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[string]*model.User)
	m.byDID = make(map[string]string)
	m.Updated = nil
	m.OnUpdate = nil
	m.Calls = struct {
		Create    int
		Update    int
		GetByID   int
		FindByDID int
		Delete    int
	}{}
	m.Errors = struct {
		Create    error
		Update    error
		GetByID   error
		FindByDID error
		Delete    error
	}{}
}
