package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/domain/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"access_token"`
	Message     string     `json:"message,omitempty"`
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name, user.Role(req.Role))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	accessToken, err := h.setAuthCookies(w, r, u)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.Error(err))
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{
		User:        u,
		AccessToken: accessToken,
		Message:     "registration successful",
	})
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	accessToken, err := h.setAuthCookies(w, r, u)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.Error(err))
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{
		User:        u,
		AccessToken: accessToken,
		Message:     "login successful",
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token is stateless;
// disabling the account invalidates it at the user lookup.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshCookie, err := r.Cookie(middleware.RefreshTokenCookie)
	if err != nil {
		respondJSONError(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwt.ValidateRefreshToken(refreshCookie.Value)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.clearAuthCookies(w)
		respondJSONError(w, "user not found", http.StatusUnauthorized)
		return
	}
	if !u.Active {
		h.clearAuthCookies(w)
		respondJSONError(w, "account is deactivated", http.StatusForbidden)
		return
	}

	accessToken, err := h.setAuthCookies(w, r, u)
	if err != nil {
		h.logger.Error("failed to issue tokens", zap.Error(err))
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{
		User:        u,
		AccessToken: accessToken,
		Message:     "token refreshed",
	})
}

// Logout handles POST /api/auth/logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

// Me handles GET /api/auth/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// setAuthCookies issues a fresh token pair and sets the auth cookies. It
// returns the access token for API clients that prefer the Bearer header.
func (h *Handlers) setAuthCookies(w http.ResponseWriter, r *http.Request, u *user.User) (string, error) {
	accessToken, accessExpiry, err := h.jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return "", err
	}
	refreshToken, refreshExpiry, err := h.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Expires:  accessExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    refreshToken,
		Path:     "/api/auth/refresh",
		Expires:  refreshExpiry,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	return accessToken, nil
}

func (h *Handlers) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    "",
		Path:     "/api/auth/refresh",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}
