package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
	"github.com/example/artisan-market/internal/email"
	"github.com/example/artisan-market/internal/infrastructure/store/mocks"
)

type sentMail struct {
	kind    string
	to      string
	orderID string
	status  string
	total   float64
	items   []email.OrderItem
}

// fakeMailer records outbound mail instead of talking to SMTP.
type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) SendOrderConfirmation(to, orderID string, total float64, items []email.OrderItem) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{kind: "confirmation", to: to, orderID: orderID, total: total, items: items})
	return nil
}

func (f *fakeMailer) SendStatusUpdate(to, orderID, status string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{kind: "status", to: to, orderID: orderID, status: status})
	return nil
}

func (f *fakeMailer) SendCancellation(to, orderID string, total float64) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{kind: "cancellation", to: to, orderID: orderID, total: total})
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeMailer, *mocks.MockUserStore) {
	t.Helper()
	mailer := &fakeMailer{}
	users := mocks.NewMockUserStore()
	require.NoError(t, users.Insert(context.Background(), &user.User{
		ID:    "buyer-1",
		Email: "priya@example.com",
		Name:  "Priya",
		Role:  user.RoleBuyer,
	}))
	return NewHandler(mailer, users, zap.NewNop()), mailer, users
}

func encodeEvent(t *testing.T, event order.Event) []byte {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	return b
}

func TestHandleEvent_OrderPlaced(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	event := order.Event{
		Type:    order.EventOrderPlaced,
		OrderID: "order-1",
		BuyerID: "buyer-1",
		Total:   1350,
		Items: []order.Item{
			{ProductID: "prod-1", Title: "Ceramic Vase", Quantity: 3, Price: 450},
		},
	}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "confirmation", sent.kind)
	assert.Equal(t, "priya@example.com", sent.to)
	assert.Equal(t, "order-1", sent.orderID)
	assert.Equal(t, 1350.0, sent.total)
	require.Len(t, sent.items, 1)
	assert.Equal(t, "Ceramic Vase", sent.items[0].Name)
	assert.Equal(t, 3, sent.items[0].Quantity)
}

func TestHandleEvent_StatusChanged(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	event := order.Event{
		Type:    order.EventOrderStatusChanged,
		OrderID: "order-1",
		BuyerID: "buyer-1",
		Status:  order.StatusShipped,
	}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "status", mailer.sent[0].kind)
	assert.Equal(t, "shipped", mailer.sent[0].status)
}

func TestHandleEvent_Cancelled(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	event := order.Event{
		Type:    order.EventOrderCancelled,
		OrderID: "order-1",
		BuyerID: "buyer-1",
		Total:   900,
	}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "cancellation", mailer.sent[0].kind)
	assert.Equal(t, 900.0, mailer.sent[0].total)
}

func TestHandleEvent_UnknownTypeIgnored(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	event := order.Event{Type: "order.archived", OrderID: "order-1", BuyerID: "buyer-1"}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleEvent_MissingBuyerDoesNotStallConsumer(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	event := order.Event{
		Type:    order.EventOrderPlaced,
		OrderID: "order-1",
		BuyerID: "no-such-buyer",
	}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	assert.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleEvent_SendFailureDoesNotStallConsumer(t *testing.T) {
	h, mailer, _ := newTestHandler(t)
	mailer.sendErr = errors.New("smtp connection refused")

	event := order.Event{
		Type:    order.EventOrderPlaced,
		OrderID: "order-1",
		BuyerID: "buyer-1",
	}

	err := h.HandleEvent(context.Background(), []byte("order-1"), encodeEvent(t, event))
	assert.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandleEvent_MalformedPayload(t *testing.T) {
	h, mailer, _ := newTestHandler(t)

	err := h.HandleEvent(context.Background(), []byte("order-1"), []byte("{not json"))
	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
}
