package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/artisan-market/internal/api/middleware"
)

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetCart handles GET /api/cart.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// AddToCart handles POST /api/cart/items. Adding the same product again
// merges quantities into the existing line.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.Add(r.Context(), middleware.GetUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// UpdateCartItem handles PUT /api/cart/items/{productID}. A quantity below 1
// removes the line.
func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("productID"), req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// RemoveCartItem handles DELETE /api/cart/items/{productID}.
func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Remove(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("productID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// ClearCart handles DELETE /api/cart.
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
