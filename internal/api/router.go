package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/auth"
)

// NewRouter wires the HTTP surface. Public catalog reads carry optional
// auth (so artisans can see their own drafts); everything else under /api
// requires a valid token, with role checks per route group.
func NewRouter(h *Handlers, jwtService *auth.JWTService, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authRequired := middleware.AuthMiddleware(jwtService)
	authOptional := middleware.OptionalAuthMiddleware(jwtService)
	artisanOnly := func(next http.Handler) http.Handler {
		return authRequired(middleware.RequireRole("artisan", "admin")(next))
	}
	buyerOnly := func(next http.Handler) http.Handler {
		return authRequired(middleware.RequireRole("buyer", "admin")(next))
	}

	handle := func(pattern string, mw func(http.Handler) http.Handler, fn http.HandlerFunc) {
		mux.Handle(pattern, mw(fn))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Refresh)
	handle("POST /api/auth/logout", authRequired, h.Logout)
	handle("GET /api/auth/me", authRequired, h.Me)

	// Profiles
	mux.HandleFunc("GET /api/artisans/{id}", h.GetArtisanProfile)
	handle("PUT /api/profile", authRequired, h.UpdateProfile)

	// Catalog
	handle("GET /api/products", authOptional, h.ListProducts)
	handle("GET /api/products/{id}", authOptional, h.GetProduct)
	handle("POST /api/products", artisanOnly, h.CreateProduct)
	handle("PUT /api/products/{id}", artisanOnly, h.UpdateProduct)
	handle("DELETE /api/products/{id}", artisanOnly, h.DeleteProduct)

	// Cart
	handle("GET /api/cart", buyerOnly, h.GetCart)
	handle("DELETE /api/cart", buyerOnly, h.ClearCart)
	handle("POST /api/cart/items", buyerOnly, h.AddToCart)
	handle("PUT /api/cart/items/{productID}", buyerOnly, h.UpdateCartItem)
	handle("DELETE /api/cart/items/{productID}", buyerOnly, h.RemoveCartItem)

	// Orders
	handle("POST /api/orders", buyerOnly, h.Checkout)
	handle("GET /api/orders", buyerOnly, h.ListOrders)
	handle("GET /api/orders/{id}", authRequired, h.GetOrder)
	handle("POST /api/orders/{id}/cancel", buyerOnly, h.CancelOrder)
	handle("PUT /api/orders/{id}/status", artisanOnly, h.UpdateOrderStatus)
	handle("GET /api/artisan/orders", artisanOnly, h.ListArtisanOrders)

	// Voice-assisted listing creation
	handle("POST /api/voice/transcribe", artisanOnly, h.TranscribeVoiceNote)
	handle("POST /api/voice/generate", artisanOnly, h.GenerateListing)

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return middleware.Logging(logger)(middleware.Metrics(mux))
}
