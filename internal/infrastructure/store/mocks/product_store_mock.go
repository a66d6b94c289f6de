package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/example/artisan-market/internal/domain/catalog"
)

// MockProductStore is an in-memory catalog.Store for testing. Its Get also
// satisfies the catalog lookup interfaces of the cart and order services.
type MockProductStore struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product

	// For tracking calls in tests
	InsertCalls int
	UpdateCalls int
	InsertErr   error
	UpdateErr   error
	GetErr      error
}

func NewMockProductStore() *MockProductStore {
	return &MockProductStore{products: make(map[string]*catalog.Product)}
}

// Seed inserts products directly, bypassing call tracking.
func (m *MockProductStore) Seed(products ...*catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range products {
		cp := *p
		m.products[p.ID] = &cp
	}
}

func (m *MockProductStore) Insert(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *MockProductStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProductStore) Update(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.products[p.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *MockProductStore) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*catalog.Product
	for _, p := range m.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.ArtisanID != "" && p.ArtisanID != f.ArtisanID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesSearch(p *catalog.Product, search string) bool {
	search = strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// Stock returns the current stock for assertions.
func (m *MockProductStore) Stock(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return p.Stock
	}
	return -1
}

// Status returns the current status for assertions.
func (m *MockProductStore) Status(id string) catalog.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return p.Status
	}
	return ""
}
