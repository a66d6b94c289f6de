package order

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must have at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidPayment    = errors.New("payment method must be cod or online")
	ErrInvalidAddress    = errors.New("shipping address is incomplete")
	ErrForbidden         = errors.New("not allowed to act on this order")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInactive   = errors.New("product is not available for purchase")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// validTransitions is the forward-only lifecycle. Cancellation is modelled
// separately because it carries compensation (restocking).
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {}, // terminal
	StatusCancelled:  {}, // terminal
}

// CanTransitionTo checks whether the order may move to the target status.
func (o *Order) CanTransitionTo(target Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// InvalidTransitionError names the rejected edge.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// NotCancellableError names the status blocking cancellation.
type NotCancellableError struct {
	Status Status
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf("order cannot be cancelled in status %s", e.Status)
}

func (e *NotCancellableError) Unwrap() error { return ErrNotCancellable }

// InsufficientStockError names the offending product and what is left.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.Title, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // cash on delivery
	PaymentStatusUnpaid  PaymentStatus = "unpaid"  // online, awaiting payment
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Address is the shipping destination captured at order time.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
}

func (a Address) validate() error {
	if a.Name == "" || a.Phone == "" || a.Line1 == "" || a.City == "" || a.PostalCode == "" {
		return ErrInvalidAddress
	}
	return nil
}

// Item is one order line. Title and price are immutable snapshots taken
// from the catalog when the order was placed.
type Item struct {
	ProductID string  `json:"product_id"`
	ArtisanID string  `json:"artisan_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Image     string  `json:"image,omitempty"`
}

type Order struct {
	ID              string               `json:"id"`
	BuyerID         string               `json:"buyer_id"`
	Items           []Item               `json:"items"`
	TotalAmount     float64              `json:"total_amount"`
	Currency        string               `json:"currency"`
	Status          Status               `json:"status"`
	PaymentMethod   PaymentMethod        `json:"payment_method"`
	PaymentStatus   PaymentStatus        `json:"payment_status"`
	ShippingAddress Address              `json:"shipping_address"`
	StatusHistory   map[Status]time.Time `json:"status_history"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	CancelledAt     *time.Time           `json:"cancelled_at,omitempty"`
}

// ContainsArtisan reports whether any line belongs to the given artisan.
func (o *Order) ContainsArtisan(artisanID string) bool {
	for _, item := range o.Items {
		if item.ArtisanID == artisanID {
			return true
		}
	}
	return false
}

// ItemsForArtisan returns only the lines owned by the artisan, with their
// combined subtotal.
func (o *Order) ItemsForArtisan(artisanID string) ([]Item, float64) {
	var items []Item
	var total float64
	for _, item := range o.Items {
		if item.ArtisanID == artisanID {
			items = append(items, item)
			total += item.Subtotal
		}
	}
	return items, total
}
