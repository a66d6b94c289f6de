package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/artisan-market/internal/auth"
	"github.com/example/artisan-market/internal/domain/cart"
	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
	"github.com/example/artisan-market/internal/generation"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP statuses. Unknown errors
// become an opaque 500 so internals never leak to clients.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, user.ErrUserNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, catalog.ErrNotOwner),
		errors.Is(err, order.ErrForbidden),
		errors.Is(err, user.ErrAccountDisabled):
		respondJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, user.ErrEmailTaken):
		respondJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, user.ErrInvalidCredentials):
		respondJSONError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, catalog.ErrInvalidStatus),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, catalog.ErrTitleRequired),
		errors.Is(err, catalog.ErrTooManyImages),
		errors.Is(err, catalog.ErrNoImages),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidPayment),
		errors.Is(err, order.ErrInvalidAddress),
		errors.Is(err, order.ErrProductInactive),
		errors.Is(err, user.ErrEmailRequired),
		errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrBioTooLong),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, generation.ErrEmptyDescription):
		respondJSONError(w, err.Error(), http.StatusBadRequest)

	default:
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

// Pagination is the envelope metadata attached to every list response.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func NewPagination(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}
