package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
)

// MockOrderStore is an in-memory order.Store. It shares a MockProductStore
// so that checkout and cancellation mutate stock with the same atomicity the
// real store guarantees: the product lock is held for the whole operation.
type MockOrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*order.Order
	products *MockProductStore

	CreateCalls int
	CreateErr   error
	UpdateErr   error
	CancelErr   error
}

func NewMockOrderStore(products *MockProductStore) *MockOrderStore {
	return &MockOrderStore{
		orders:   make(map[string]*order.Order),
		products: products,
	}
}

// Create decrements stock for every line, all-or-nothing, then stores the
// order. A short line fails the whole call with InsufficientStockError.
func (m *MockOrderStore) Create(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.products.mu.Lock()
	defer m.products.mu.Unlock()

	for _, item := range o.Items {
		p, ok := m.products.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			available := 0
			title := ""
			if ok {
				available = p.Stock
				title = p.Title
			}
			return &order.InsufficientStockError{
				ProductID: item.ProductID,
				Title:     title,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}
	for _, item := range o.Items {
		p := m.products.products[item.ProductID]
		p.Stock -= item.Quantity
		p.Sold += item.Quantity
		if p.Stock == 0 && p.Status == catalog.StatusActive {
			p.Status = catalog.StatusSoldOut
		}
	}

	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *MockOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

// Cancel stores the cancelled order and restores stock for every line.
func (m *MockOrderStore) Cancel(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CancelErr != nil {
		return m.CancelErr
	}
	if _, ok := m.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}

	m.products.mu.Lock()
	defer m.products.mu.Unlock()

	for _, item := range o.Items {
		p, ok := m.products.products[item.ProductID]
		if !ok {
			continue
		}
		p.Stock += item.Quantity
		if p.Sold -= item.Quantity; p.Sold < 0 {
			p.Sold = 0
		}
		if p.Status == catalog.StatusSoldOut {
			p.Status = catalog.StatusActive
		}
	}

	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *MockOrderStore) ListByBuyer(ctx context.Context, buyerID string, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	return m.list(func(o *order.Order) bool { return o.BuyerID == buyerID }, status, limit, offset)
}

func (m *MockOrderStore) ListByArtisan(ctx context.Context, artisanID string, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	return m.list(func(o *order.Order) bool { return o.ContainsArtisan(artisanID) }, status, limit, offset)
}

func (m *MockOrderStore) list(match func(*order.Order) bool, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*order.Order
	for _, o := range m.orders {
		if !match(o) {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
