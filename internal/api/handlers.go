package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/auth"
	"github.com/example/artisan-market/internal/domain/cart"
	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
	"github.com/example/artisan-market/internal/domain/user"
	"github.com/example/artisan-market/internal/generation"
)

// Handlers bundles the domain services behind the HTTP surface.
type Handlers struct {
	catalog     *catalog.Service
	carts       *cart.Service
	orders      *order.Service
	users       *user.Service
	generation  *generation.Service
	transcriber generation.Transcriber
	jwt         *auth.JWTService
	logger      *zap.Logger
}

func NewHandlers(
	catalogSvc *catalog.Service,
	cartSvc *cart.Service,
	orderSvc *order.Service,
	userSvc *user.Service,
	genSvc *generation.Service,
	transcriber generation.Transcriber,
	jwtSvc *auth.JWTService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalog:     catalogSvc,
		carts:       cartSvc,
		orders:      orderSvc,
		users:       userSvc,
		generation:  genSvc,
		transcriber: transcriber,
		jwt:         jwtSvc,
		logger:      logger.With(zap.String("component", "api")),
	}
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
