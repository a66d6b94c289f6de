package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/domain/order"
)

type checkoutRequest struct {
	Items           []order.ItemRequest `json:"items"`
	ShippingAddress order.Address       `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
}

type orderListResponse struct {
	Orders     []*order.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

type artisanOrderListResponse struct {
	Orders     []*order.ArtisanOrder `json:"orders"`
	Pagination Pagination            `json:"pagination"`
}

// Checkout handles POST /api/orders. On success the buyer's cart is cleared;
// a clear failure is logged but never fails the placed order.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	buyerID := middleware.GetUserID(r.Context())
	o, err := h.orders.Create(r.Context(), buyerID, req.Items,
		req.ShippingAddress, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.carts.Clear(r.Context(), buyerID); err != nil {
		h.logger.Warn("failed to clear cart after checkout",
			zap.String("buyer_id", buyerID),
			zap.String("order_id", o.ID),
			zap.Error(err))
	}

	respondJSON(w, http.StatusCreated, o)
}

// GetOrder handles GET /api/orders/{id}. Only the buyer, an artisan with a
// line in the order, or an admin may read it.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	claims, _ := middleware.GetUserFromContext(r.Context())
	if claims == nil ||
		(o.BuyerID != claims.UserID && !o.ContainsArtisan(claims.UserID) && claims.Role != "admin") {
		respondJSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// ListOrders handles GET /api/orders for the authenticated buyer.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	status := order.Status(r.URL.Query().Get("status"))

	orders, total, err := h.orders.ListByBuyer(r.Context(), middleware.GetUserID(r.Context()), status, page, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}

	respondJSON(w, http.StatusOK, orderListResponse{
		Orders:     orders,
		Pagination: NewPagination(page, limit, total),
	})
}

// ListArtisanOrders handles GET /api/artisan/orders: orders containing the
// artisan's products, narrowed to just those lines.
func (h *Handlers) ListArtisanOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	status := order.Status(r.URL.Query().Get("status"))

	orders, total, err := h.orders.ListByArtisan(r.Context(), middleware.GetUserID(r.Context()), status, page, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*order.ArtisanOrder{}
	}

	respondJSON(w, http.StatusOK, artisanOrderListResponse{
		Orders:     orders,
		Pagination: NewPagination(page, limit, total),
	})
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status (artisans only).
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), middleware.GetUserID(r.Context()),
		r.PathValue("id"), order.Status(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// CancelOrder handles POST /api/orders/{id}/cancel (buyer only). Stock for
// every line is restored atomically with the cancellation.
func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Cancel(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
