package order

import "time"

// Event types published to Kafka after order state changes commit.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

// Event is the envelope written to the order-events topic, keyed by order id.
type Event struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	BuyerID    string    `json:"buyer_id"`
	Status     Status    `json:"status"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
	Items      []Item    `json:"items,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(eventType string, o *Order) Event {
	return Event{
		Type:       eventType,
		OrderID:    o.ID,
		BuyerID:    o.BuyerID,
		Status:     o.Status,
		Total:      o.TotalAmount,
		Currency:   o.Currency,
		Items:      o.Items,
		OccurredAt: time.Now(),
	}
}
