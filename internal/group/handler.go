package group

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boombag/referral/internal/invite"
	"github.com/boombag/referral/pkg/middleware"
	"github.com/boombag/referral/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
	ledger  *invite.Ledger
}

// NewHandler creates a new group handler
func NewHandler(service *Service, ledger *invite.Ledger) *Handler {
	return &Handler{service: service, ledger: ledger}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListMine)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/members", h.GetMembers)
	r.Get("/{id}/summary", h.GetSummary)

	return r
}

// ListMine handles GET /groups
// @Summary      List my groups
// @Description  Get the authenticated user's groups with member counts
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groups, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	groupResponses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		summary, err := h.ledger.Summary(r.Context(), g.ID)
		if err != nil {
			response.InternalError(w, "Failed to compute group summary")
			return
		}
		groupResponses[i] = g.ToResponse().WithSummary(summary)
	}

	response.JSON(w, http.StatusOK, groupResponses)
}

// GetByID handles GET /groups/{id}
// @Summary      Get group by ID
// @Description  Get a group with its member and verified counts
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	g, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	summary, err := h.ledger.Summary(r.Context(), g.ID)
	if err != nil {
		response.InternalError(w, "Failed to compute group summary")
		return
	}

	response.JSON(w, http.StatusOK, g.ToResponse().WithSummary(summary))
}

// GetMembers handles GET /groups/{id}/members
// @Summary      List group members
// @Description  Get the members of a group with their confirmation status
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]invite.Member}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	members, err := h.ledger.Members(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to list members")
		return
	}

	response.JSON(w, http.StatusOK, members)
}

// GetSummary handles GET /groups/{id}/summary
// @Summary      Get group summary
// @Description  Get the raw member count and verified member count of a group
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=invite.Summary}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	summary, err := h.ledger.Summary(r.Context(), id)
	if err != nil {
		response.InternalError(w, "Failed to compute group summary")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
