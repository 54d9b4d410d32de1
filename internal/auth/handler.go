package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boombag/referral/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for auth endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	return r
}

// Register handles POST /auth/register
// @Summary      Sign up with an invite code
// @Description  Create a pending account linked to the level-1 group the invite code belongs to
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Signup request"
// @Success      201 {object} response.APIResponse{data=AuthResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(w, "Name, email and password are required")
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteCodeRequired),
			errors.Is(err, ErrInviteCodeInvalid),
			errors.Is(err, ErrLevelNotJoinable):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrGroupFull):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to register")
		}
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Verify credentials and issue a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to log in")
		return
	}

	response.JSON(w, http.StatusOK, resp)
}
