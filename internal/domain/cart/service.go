package cart

import (
	"context"

	"github.com/example/artisan-market/internal/domain/catalog"
	"go.uber.org/zap"
)

// Store persists whole cart documents keyed by buyer id. Get returns
// (nil, nil) when the buyer has no cart yet.
type Store interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}

// Catalog is the read-only product lookup the cart needs for price and
// name snapshots.
type Catalog interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

type Service struct {
	store   Store
	catalog Catalog
	logger  *zap.Logger
}

func NewService(store Store, cat Catalog, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		logger:  logger.With(zap.String("component", "cart")),
	}
}

// Get returns the buyer's cart, or an empty one if none exists yet.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return New(userID), nil
	}
	return c, nil
}

// Add puts quantity units of a product into the cart. Price, name and image
// are snapshotted from the catalog, never taken from the client.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	c.AddItem(p.ID, quantity, p.Price, p.Title, image)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets a line's quantity; below 1 removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if !c.UpdateQuantity(productID, quantity) {
		return nil, ErrItemNotFound
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*Cart, error) {
	return s.UpdateQuantity(ctx, userID, productID, 0)
}

// Clear drops the buyer's cart document entirely.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}
