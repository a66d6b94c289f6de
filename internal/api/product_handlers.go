package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/domain/catalog"
)

type createProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Materials   []string `json:"materials"`
	Tags        []string `json:"tags"`
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
	Images      []string `json:"images"`
	Materials   []string `json:"materials"`
	Tags        []string `json:"tags"`
}

type productListResponse struct {
	Products   []*catalog.Product `json:"products"`
	Pagination Pagination         `json:"pagination"`
}

// CreateProduct handles POST /api/products (artisans only).
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.catalog.Create(r.Context(), middleware.GetUserID(r.Context()), catalog.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    catalog.Category(req.Category),
		Price:       req.Price,
		Currency:    req.Currency,
		Stock:       req.Stock,
		Status:      catalog.Status(req.Status),
		Images:      req.Images,
		Materials:   req.Materials,
		Tags:        req.Tags,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// ListProducts handles GET /api/products with filter and pagination query
// parameters.
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category:  catalog.Category(q.Get("category")),
		ArtisanID: q.Get("artisan_id"),
		Search:    q.Get("search"),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 20),
	}

	// Artisans may browse their own non-active listings.
	if status := q.Get("status"); status != "" {
		if claims, ok := middleware.GetUserFromContext(r.Context()); ok &&
			(claims.UserID == f.ArtisanID || claims.Role == "admin") {
			f.Status = catalog.Status(status)
		}
	}

	products, total, err := h.catalog.List(r.Context(), f)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}

	respondJSON(w, http.StatusOK, productListResponse{
		Products:   products,
		Pagination: NewPagination(f.Page, f.Limit, total),
	})
}

// GetProduct handles GET /api/products/{id}.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdateProduct handles PUT /api/products/{id} (owning artisan only).
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := catalog.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Materials:   req.Materials,
		Tags:        req.Tags,
	}
	if req.Category != nil {
		c := catalog.Category(*req.Category)
		in.Category = &c
	}
	if req.Status != nil {
		s := catalog.Status(*req.Status)
		in.Status = &s
	}

	p, err := h.catalog.Update(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/{id}. Listings are soft-deleted
// so existing order lines keep resolving.
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product discontinued"})
}
