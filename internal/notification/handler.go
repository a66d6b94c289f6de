package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
	"github.com/example/artisan-market/internal/email"
)

// Mailer is the outbound mail surface the handler needs; email.Service
// satisfies it.
type Mailer interface {
	SendOrderConfirmation(to, orderID string, total float64, items []email.OrderItem) error
	SendStatusUpdate(to, orderID, status string) error
	SendCancellation(to, orderID string, total float64) error
}

// Handler turns order events into buyer emails. Lookup and send failures
// are logged, not returned, so one bad event cannot stall the consumer group.
type Handler struct {
	mailer Mailer
	users  user.Store
	logger *zap.Logger
}

func NewHandler(mailer Mailer, users user.Store, logger *zap.Logger) *Handler {
	return &Handler{
		mailer: mailer,
		users:  users,
		logger: logger.With(zap.String("component", "notifier")),
	}
}

// HandleEvent processes one message from the order-events topic.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		h.logger.Error("failed to unmarshal event",
			zap.String("key", string(key)),
			zap.Error(err))
		return err
	}

	buyer, err := h.users.GetByID(ctx, event.BuyerID)
	if err != nil {
		h.logger.Warn("buyer lookup failed",
			zap.String("order_id", event.OrderID),
			zap.String("buyer_id", event.BuyerID),
			zap.Error(err))
		return nil
	}

	switch event.Type {
	case order.EventOrderPlaced:
		err = h.mailer.SendOrderConfirmation(buyer.Email, event.OrderID, event.Total, emailItems(event.Items))
	case order.EventOrderStatusChanged:
		err = h.mailer.SendStatusUpdate(buyer.Email, event.OrderID, string(event.Status))
	case order.EventOrderCancelled:
		err = h.mailer.SendCancellation(buyer.Email, event.OrderID, event.Total)
	default:
		h.logger.Debug("ignoring event", zap.String("type", event.Type))
		return nil
	}

	if err != nil {
		h.logger.Error("failed to send email",
			zap.String("order_id", event.OrderID),
			zap.String("type", event.Type),
			zap.Error(err))
		return nil
	}

	h.logger.Info("notification sent",
		zap.String("order_id", event.OrderID),
		zap.String("type", event.Type))
	return nil
}

func emailItems(items []order.Item) []email.OrderItem {
	out := make([]email.OrderItem, len(items))
	for i, item := range items {
		out[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Title,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return out
}
