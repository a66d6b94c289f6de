package order

import (
	"context"
	"fmt"
	"time"

	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence boundary for orders. Create and Cancel must be
// transactional with their stock mutations: Create applies a conditional
// decrement per line (failing with InsufficientStockError when stock would
// go negative) and Cancel restores stock, each as one atomic unit with the
// order write so that orders and the catalog never diverge.
type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, o *Order) error
	Cancel(ctx context.Context, o *Order) error
	ListByBuyer(ctx context.Context, buyerID string, status Status, limit, offset int) ([]*Order, int, error)
	ListByArtisan(ctx context.Context, artisanID string, status Status, limit, offset int) ([]*Order, int, error)
}

// Catalog is the read-only product lookup used to validate references and
// snapshot authoritative prices at checkout.
type Catalog interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// Publisher pushes order events to the broker. Publishing is best-effort
// and never fails the originating request.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Service struct {
	store     Store
	catalog   Catalog
	publisher Publisher
	logger    *zap.Logger
}

func NewService(store Store, cat Catalog, pub Publisher, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		catalog:   cat,
		publisher: pub,
		logger:    logger.With(zap.String("component", "order")),
	}
}

// ItemRequest is one requested line at checkout. Only the reference and
// quantity come from the client; price is re-derived from the catalog.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Create places an order: it validates every referenced product, snapshots
// titles and prices server-side, and persists the order together with the
// stock decrements in a single transaction. On any failure nothing is
// applied.
func (s *Service) Create(ctx context.Context, buyerID string, items []ItemRequest, addr Address, method PaymentMethod) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	if method != PaymentCOD && method != PaymentOnline {
		return nil, ErrInvalidPayment
	}
	if err := addr.validate(); err != nil {
		return nil, err
	}

	var (
		lines []Item
		total float64
	)
	for _, req := range items {
		if req.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		p, err := s.catalog.Get(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, err)
		}
		if !p.Purchasable() {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrProductInactive)
		}
		// Advisory point-in-time check; the store re-checks atomically.
		if req.Quantity > p.Stock {
			return nil, &InsufficientStockError{
				ProductID: p.ID,
				Title:     p.Title,
				Requested: req.Quantity,
				Available: p.Stock,
			}
		}

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		subtotal := float64(req.Quantity) * p.Price
		total += subtotal
		lines = append(lines, Item{
			ProductID: p.ID,
			ArtisanID: p.ArtisanID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  req.Quantity,
			Subtotal:  subtotal,
			Image:     image,
		})
	}

	paymentStatus := PaymentStatusUnpaid
	if method == PaymentCOD {
		paymentStatus = PaymentStatusPending
	}

	now := time.Now()
	o := &Order{
		ID:              uuid.New().String(),
		BuyerID:         buyerID,
		Items:           lines,
		TotalAmount:     total,
		Currency:        catalog.DefaultCurrency,
		Status:          StatusPending,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		ShippingAddress: addr,
		StatusHistory:   map[Status]time.Time{StatusPending: now},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("buyer_id", buyerID),
		zap.Float64("total", total),
		zap.Int("lines", len(lines)))
	s.publish(ctx, newEvent(EventOrderPlaced, o))
	return o, nil
}

// UpdateStatus advances an order along the forward-only lifecycle. The acting
// user must own at least one line item; cancellation goes through Cancel.
func (s *Service) UpdateStatus(ctx context.Context, actorID, orderID string, target Status) (*Order, error) {
	switch target {
	case StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered:
	default:
		return nil, &InvalidTransitionError{To: target}
	}

	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.ContainsArtisan(actorID) {
		return nil, ErrForbidden
	}
	if !o.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{From: o.Status, To: target}
	}

	now := time.Now()
	o.Status = target
	o.UpdatedAt = now
	if o.StatusHistory == nil {
		o.StatusHistory = make(map[Status]time.Time)
	}
	o.StatusHistory[target] = now
	if target == StatusDelivered && o.PaymentMethod == PaymentCOD {
		o.PaymentStatus = PaymentStatusPaid
	}

	if err := s.store.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(target)))
	s.publish(ctx, newEvent(EventOrderStatusChanged, o))
	return o, nil
}

// Cancel cancels a buyer's own order and restores stock for every line in
// the same transaction. Shipped, delivered and already-cancelled orders are
// immutable.
func (s *Service) Cancel(ctx context.Context, buyerID, orderID string) (*Order, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	switch o.Status {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return nil, &NotCancellableError{Status: o.Status}
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	if o.StatusHistory == nil {
		o.StatusHistory = make(map[Status]time.Time)
	}
	o.StatusHistory[StatusCancelled] = now

	if err := s.store.Cancel(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID))
	s.publish(ctx, newEvent(EventOrderCancelled, o))
	return o, nil
}

// Get fetches one order. Access control (buyer or line-owning artisan) is
// enforced at the API boundary where the caller's role is known.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.store.Get(ctx, orderID)
}

func (s *Service) ListByBuyer(ctx context.Context, buyerID string, status Status, page, limit int) ([]*Order, int, error) {
	page, limit = clampPage(page, limit)
	return s.store.ListByBuyer(ctx, buyerID, status, limit, (page-1)*limit)
}

// ArtisanOrder is an order narrowed to one artisan's lines, with the
// subtotal for just those lines.
type ArtisanOrder struct {
	*Order
	ArtisanItems []Item  `json:"items"`
	ArtisanTotal float64 `json:"artisan_total"`
}

// ListByArtisan returns orders containing at least one of the artisan's
// products, with items filtered down to that artisan.
func (s *Service) ListByArtisan(ctx context.Context, artisanID string, status Status, page, limit int) ([]*ArtisanOrder, int, error) {
	page, limit = clampPage(page, limit)
	orders, total, err := s.store.ListByArtisan(ctx, artisanID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*ArtisanOrder, 0, len(orders))
	for _, o := range orders {
		items, subtotal := o.ItemsForArtisan(artisanID)
		views = append(views, &ArtisanOrder{
			Order:        o,
			ArtisanItems: items,
			ArtisanTotal: subtotal,
		})
	}
	return views, total, nil
}

func (s *Service) publish(ctx context.Context, e Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e.OrderID, e); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("order_id", e.OrderID),
			zap.String("type", e.Type),
			zap.Error(err))
	}
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
