package mocks

import (
	"context"
	"sync"

	"github.com/example/artisan-market/internal/domain/cart"
)

// MockCartStore is an in-memory cart.Store for testing.
type MockCartStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart

	SaveCalls   int
	DeleteCalls int
	SaveErr     error
	GetErr      error
}

func NewMockCartStore() *MockCartStore {
	return &MockCartStore{carts: make(map[string]*cart.Cart)}
}

func (m *MockCartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp, nil
}

func (m *MockCartStore) Save(ctx context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	m.carts[c.UserID] = &cp
	return nil
}

func (m *MockCartStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	delete(m.carts, userID)
	return nil
}
