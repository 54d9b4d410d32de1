package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boombag/referral/internal/progression"
	"github.com/boombag/referral/internal/user"
	"github.com/boombag/referral/pkg/response"
)

// Handler handles administrative HTTP requests
type Handler struct {
	service *Service
	engine  *progression.Engine
}

// NewHandler creates a new admin handler
func NewHandler(service *Service, engine *progression.Engine) *Handler {
	return &Handler{service: service, engine: engine}
}

// Routes returns the router for admin endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/pending", h.PendingVerifications)
	r.Get("/stats", h.Stats)
	r.Get("/logs", h.RecentLogs)
	r.Get("/eligible", h.ListEligible)

	r.Post("/users/{id}/activate", h.ActivateUser)
	r.Post("/users/{id}/reject", h.RejectUser)
	r.Post("/users/{id}/advance", h.TryAdvance)
	r.Post("/invites/{id}/confirm", h.ConfirmMember)

	return r
}

// PendingVerifications handles GET /admin/pending
// @Summary      List pending verifications
// @Description  Get users awaiting admin verification, newest first
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]user.UserResponse}
// @Router       /admin/pending [get]
func (h *Handler) PendingVerifications(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.PendingVerifications(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list pending verifications")
		return
	}

	userResponses := make([]*user.UserResponse, len(pending))
	for i, u := range pending {
		userResponses[i] = u.ToResponse()
	}

	response.JSON(w, http.StatusOK, userResponses)
}

// ActivateUser handles POST /admin/users/{id}/activate
// @Summary      Verify a user
// @Description  Transition a user to active and seed their first group
// @Tags         admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=user.UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /admin/users/{id}/activate [post]
func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.engine.ActivateUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to activate user")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// RejectUser handles POST /admin/users/{id}/reject
// @Summary      Reject a user
// @Description  Transition a user to rejected
// @Tags         admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=user.UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /admin/users/{id}/reject [post]
func (h *Handler) RejectUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.engine.RejectUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to reject user")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// ConfirmMember handles POST /admin/invites/{id}/confirm
// @Summary      Confirm a group member
// @Description  Mark an invite as owner-confirmed and run progression checks
// @Tags         admin
// @Produce      json
// @Param        id path string true "Invite ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /admin/invites/{id}/confirm [post]
func (h *Handler) ConfirmMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid invite ID")
		return
	}

	if err := h.engine.ConfirmMember(r.Context(), id); err != nil {
		if errors.Is(err, progression.ErrInviteNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to confirm member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member confirmed"})
}

// TryAdvance handles POST /admin/users/{id}/advance
// @Summary      Reconcile a user's progression
// @Description  Re-run the advancement check for a user; a false result is not an error
// @Tags         admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse
// @Router       /admin/users/{id}/advance [post]
func (h *Handler) TryAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	created, err := h.engine.TryAdvance(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to run advancement check")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"group_created": created})
}

// ListEligible handles GET /admin/eligible
// @Summary      Audit users missing their next group
// @Description  List users whose latest group is full but whose next group has not been created
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]progression.EligibleUser}
// @Router       /admin/eligible [get]
func (h *Handler) ListEligible(w http.ResponseWriter, r *http.Request) {
	eligible, err := h.engine.FindUsersMissingNextGroup(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to audit eligibility")
		return
	}

	response.JSON(w, http.StatusOK, eligible)
}

// Stats handles GET /admin/stats
// @Summary      Dashboard stats
// @Description  Get network-wide counters for the admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.APIResponse{data=Stats}
// @Router       /admin/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to compute stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// RecentLogs handles GET /admin/logs
// @Summary      Recent activity
// @Description  Get recent verification outcomes and group creations
// @Tags         admin
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]LogEntry}
// @Router       /admin/logs [get]
func (h *Handler) RecentLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.RecentLogs(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to fetch activity log")
		return
	}

	response.JSON(w, http.StatusOK, logs)
}
