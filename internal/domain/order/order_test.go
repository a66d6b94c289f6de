package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusProcessing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusConfirmed, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.allowed, o.CanTransitionTo(tt.to))
		})
	}
}

func TestTypedErrorsUnwrap(t *testing.T) {
	assert.True(t, errors.Is(&InvalidTransitionError{From: StatusPending, To: StatusShipped}, ErrInvalidTransition))
	assert.True(t, errors.Is(&NotCancellableError{Status: StatusShipped}, ErrNotCancellable))
	assert.True(t, errors.Is(&InsufficientStockError{ProductID: "p1", Requested: 3, Available: 1}, ErrInsufficientStock))
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{ProductID: "p1", Title: "Silk Saree", Requested: 3, Available: 1}
	assert.Contains(t, err.Error(), "Silk Saree")
	assert.Contains(t, err.Error(), "requested 3")
	assert.Contains(t, err.Error(), "available 1")
}

func TestItemsForArtisan(t *testing.T) {
	o := &Order{Items: []Item{
		{ProductID: "p1", ArtisanID: "a1", Subtotal: 900},
		{ProductID: "p2", ArtisanID: "a2", Subtotal: 300},
		{ProductID: "p3", ArtisanID: "a1", Subtotal: 150},
	}}

	items, total := o.ItemsForArtisan("a1")
	assert.Len(t, items, 2)
	assert.InDelta(t, 1050.0, total, 0.001)

	assert.True(t, o.ContainsArtisan("a2"))
	assert.False(t, o.ContainsArtisan("a3"))

	items, total = o.ItemsForArtisan("a3")
	assert.Empty(t, items)
	assert.Zero(t, total)
}
