package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₹0.00"},
		{"under a thousand", 450, "₹450.00"},
		{"thousands", 1234.5, "₹1,234.50"},
		{"lakhs", 123456, "₹1,23,456.00"},
		{"tens of lakhs", 1234567, "₹12,34,567.00"},
		{"crores", 12345678.9, "₹1,23,45,678.90"},
		{"rounds paise", 99.999, "₹100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestBuildOrderConfirmationBody(t *testing.T) {
	items := []OrderItem{
		{ProductID: "prod-1", Name: "Ceramic Vase", Quantity: 2, Price: 450},
		{ProductID: "prod-2", Quantity: 1, Price: 1200},
	}

	body := BuildOrderConfirmationBody("order-123", 2100, items)

	assert.Contains(t, body, "order-123")
	assert.Contains(t, body, "Ceramic Vase")
	// Lines without a title fall back to the product id.
	assert.Contains(t, body, "prod-2")
	// Line subtotal and order total.
	assert.Contains(t, body, "₹900.00")
	assert.Contains(t, body, "₹2,100.00")
}

func TestBuildStatusUpdateBody(t *testing.T) {
	body := BuildStatusUpdateBody("order-123", "shipped")

	assert.Contains(t, body, "order-123")
	assert.Contains(t, body, "<strong>shipped</strong>")
}

func TestBuildCancellationBody(t *testing.T) {
	body := BuildCancellationBody("order-123", 1350)

	assert.Contains(t, body, "order-123")
	assert.Contains(t, body, "₹1,350.00")
	assert.Contains(t, body, "returned to stock")
}
