package progression

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boombag/referral/internal/group"
	"github.com/boombag/referral/internal/user"
	"github.com/boombag/referral/pkg/middleware"
	"github.com/boombag/referral/pkg/response"
)

// Handler handles HTTP requests for membership operations
type Handler struct {
	broker *Broker
}

// NewHandler creates a new membership handler
func NewHandler(broker *Broker) *Handler {
	return &Handler{broker: broker}
}

// Routes returns the router for membership endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/join", h.Join)

	return r
}

// Join handles POST /membership/join
// @Summary      Join a group
// @Description  Request membership in an existing group by its code. The membership stays unconfirmed until the group owner confirms it.
// @Tags         membership
// @Accept       json
// @Produce      json
// @Param        request body JoinRequest true "Group code"
// @Success      201 {object} response.APIResponse{data=JoinResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /membership/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupCode == "" {
		response.BadRequest(w, "Group code is required")
		return
	}

	inv, err := h.broker.Join(r.Context(), userID, req.GroupCode)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound), errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrLevelMismatch):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrGroupFull), errors.Is(err, ErrAlreadyMember):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to join group")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &JoinResponse{
		InviteID:       inv.ID,
		GroupID:        inv.GroupID,
		OwnerConfirmed: inv.OwnerConfirmed,
	})
}
