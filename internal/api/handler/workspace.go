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

// WorkspaceHandler handles workspace endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkspaceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, workspace)
}

// List handles listing the user's workspaces with aggregate progress
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspaces)
}

// Get handles getting a workspace by ID
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	workspace, err := h.workspaceService.GetByID(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Update handles updating a workspace
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	var input domain.WorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Delete handles deleting a workspace
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workspaceID, err := uuid.Parse(chi.URLParam(r, "workspaceID"))
	if err != nil {
		response.BadRequest(w, "invalid workspace ID")
		return
	}

	if err := h.workspaceService.Delete(r.Context(), workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// Groups handles listing the distinct group labels of the user's workspaces
func (h *WorkspaceHandler) Groups(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	groups, err := h.workspaceService.GroupNames(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, groups)
}
