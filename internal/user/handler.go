package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boombag/referral/pkg/middleware"
	"github.com/boombag/referral/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetProfile)
	r.Put("/me", h.UpdateProfile)
	r.Put("/me/pack", h.SelectPack)

	return r
}

// GetProfile handles GET /users/me
// @Summary      Get my profile
// @Description  Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/me [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get profile")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// UpdateProfile handles PUT /users/me
// @Summary      Update my profile
// @Description  Update name, email or whatsapp of the authenticated user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields to update"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/me [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update profile")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// SelectPack handles PUT /users/me/pack
// @Summary      Select a plan
// @Description  Choose the starter or gold pack for the authenticated user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body SelectPackRequest true "Pack selection"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/me/pack [put]
func (h *Handler) SelectPack(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req SelectPackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.SelectPack(r.Context(), userID, req.PackType)
	if err != nil {
		if errors.Is(err, ErrInvalidPack) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to select pack")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}
