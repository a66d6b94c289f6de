package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/artisan-market/internal/api/middleware"
	"github.com/example/artisan-market/internal/domain/user"
)

// artisanProfileResponse is the public view of an artisan account. Email
// and account flags stay private.
type artisanProfileResponse struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Bio    string    `json:"bio,omitempty"`
	Craft  string    `json:"craft,omitempty"`
	Region string    `json:"region,omitempty"`
	Joined time.Time `json:"joined"`
}

// GetArtisanProfile handles GET /api/artisans/{id}: the public profile page
// behind a product's "about the maker" link.
func (h *Handlers) GetArtisanProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetArtisan(r.Context(), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, artisanProfileResponse{
		ID:     u.ID,
		Name:   u.Name,
		Bio:    u.Bio,
		Craft:  u.Craft,
		Region: u.Region,
		Joined: u.CreatedAt,
	})
}

// UpdateProfile handles PUT /api/profile: the caller edits their own
// display name and artisan story.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Bio    *string `json:"bio"`
		Craft  *string `json:"craft"`
		Region *string `json:"region"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), user.ProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Craft:  req.Craft,
		Region: req.Region,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}
