package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  Pagination
	}{
		{
			name: "first of many pages",
			page: 1, limit: 20, total: 45,
			want: Pagination{Page: 1, Limit: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 20, total: 45,
			want: Pagination{Page: 2, Limit: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, limit: 20, total: 45,
			want: Pagination{Page: 3, Limit: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result",
			page: 1, limit: 20, total: 0,
			want: Pagination{Page: 1, Limit: 20, Total: 0, TotalPages: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "defaults applied",
			page: 0, limit: 500, total: 10,
			want: Pagination{Page: 1, Limit: 20, Total: 10, TotalPages: 1, HasNext: false, HasPrev: false},
		},
		{
			name: "exact multiple",
			page: 2, limit: 10, total: 20,
			want: Pagination{Page: 2, Limit: 10, Total: 20, TotalPages: 2, HasNext: false, HasPrev: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestRespondDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"product not found", catalog.ErrProductNotFound, 404},
		{"order not found", order.ErrOrderNotFound, 404},
		{"not owner", catalog.ErrNotOwner, 403},
		{"insufficient stock", &order.InsufficientStockError{ProductID: "p1", Requested: 5, Available: 2}, 409},
		{"invalid transition", &order.InvalidTransitionError{From: order.StatusPending, To: order.StatusShipped}, 409},
		{"email taken", user.ErrEmailTaken, 409},
		{"invalid credentials", user.ErrInvalidCredentials, 401},
		{"validation", catalog.ErrInvalidPrice, 400},
		{"unknown error stays opaque", assert.AnError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondDomainError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRespondDomainError_InternalErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	respondDomainError(rec, assert.AnError)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
