package mocks

import (
	"context"
	"sync"

	"github.com/example/artisan-market/internal/domain/user"
)

// MockUserStore is an in-memory user.Store for testing.
type MockUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]*user.User

	InsertErr error
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (m *MockUserStore) Insert(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return m.InsertErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *MockUserStore) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.byID[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[old.Email] = &cp
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
