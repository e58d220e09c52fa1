package handler

import (
	"encoding/json"
	"net/http"

	"github.com/focusflowhq/backend/internal/api/middleware"
	"github.com/focusflowhq/backend/internal/api/response"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/focusflowhq/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ShareHandler handles workspace sharing endpoints
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// Share invites a user to a workspace
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	var input domain.ShareCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	share, err := h.shareService.Share(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, share)
}

// Respond accepts or declines an invitation
func (h *ShareHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	shareID, err := uuid.Parse(chi.URLParam(r, "shareID"))
	if err != nil {
		response.BadRequest(w, "invalid share ID")
		return
	}

	var input domain.ShareResponse
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	share, err := h.shareService.Respond(r.Context(), userID, shareID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, share)
}

// UpdatePermissions upserts a collaborator's flags on a resource
func (h *ShareHandler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	targetUserID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	var input domain.PermissionUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	perm, err := h.shareService.UpdatePermissions(r.Context(), userID, workspaceID, targetUserID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, perm)
}

// Revoke removes a collaborator from a workspace
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	targetUserID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	if err := h.shareService.Revoke(r.Context(), userID, workspaceID, targetUserID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// SharedUsers lists the collaborators on a workspace
func (h *ShareHandler) SharedUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	users, err := h.shareService.SharedUsers(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, users)
}

// MyInvitations lists the invitations extended to the caller
func (h *ShareHandler) MyInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	invitations, err := h.shareService.MyInvitations(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, invitations)
}
