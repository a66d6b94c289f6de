package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/auth"
	"github.com/example/artisan-market/internal/domain/user"
)

func newCookieTestHandlers() *Handlers {
	return &Handlers{
		jwt:    auth.NewJWTService(strings.Repeat("k", 32), 15*time.Minute, 7*24*time.Hour),
		logger: zap.NewNop(),
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSetAuthCookies(t *testing.T) {
	h := newCookieTestHandlers()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	u := &user.User{ID: "user-1", Email: "priya@example.com", Role: user.RoleBuyer}
	token, err := h.setAuthCookies(rec, req, u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The returned token is a valid access token for the same user.
	claims, err := h.jwt.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	cookies := rec.Result().Cookies()

	access := findCookie(cookies, middleware.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Equal(t, token, access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)

	refresh := findCookie(cookies, middleware.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.NotEmpty(t, refresh.Value)
	assert.True(t, refresh.HttpOnly)
	// The refresh token is only ever sent back to the refresh endpoint.
	assert.Equal(t, "/api/auth/refresh", refresh.Path)

	userID, err := h.jwt.ValidateRefreshToken(refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestClearAuthCookies(t *testing.T) {
	h := newCookieTestHandlers()
	rec := httptest.NewRecorder()

	h.clearAuthCookies(rec)

	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c := findCookie(rec.Result().Cookies(), name)
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
}
