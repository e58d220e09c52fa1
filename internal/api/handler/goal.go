package handler

import (
	"encoding/json"
	"net/http"

	"github.com/focusflowhq/backend/internal/access"
	"github.com/focusflowhq/backend/internal/api/middleware"
	"github.com/focusflowhq/backend/internal/api/response"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/focusflowhq/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GoalHandler handles goal endpoints
type GoalHandler struct {
	goalService *service.GoalService
	resolver    *access.Resolver
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService *service.GoalService, resolver *access.Resolver) *GoalHandler {
	return &GoalHandler{goalService: goalService, resolver: resolver}
}

// Create handles goal creation. The target workspace comes from the body, so
// authorization happens here instead of in route middleware.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.GoalCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.resolver.Authorize(r.Context(), userID, access.ResourceWorkspace, input.WorkspaceID, access.ActionEdit); err != nil {
		response.FromError(w, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, goal)
}

// List handles listing the user's goals, optionally narrowed to one workspace
// via the workspace_id query parameter
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var workspaceID *uuid.UUID
	if raw := r.URL.Query().Get("workspace_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid workspace_id")
			return
		}
		workspaceID = &id
	}

	goals, err := h.goalService.ListByUser(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, goals)
}

// Get handles getting a goal by ID
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		response.BadRequest(w, "invalid goal ID")
		return
	}

	goal, err := h.goalService.GetByID(r.Context(), goalID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, goal)
}

// Update handles updating a goal
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		response.BadRequest(w, "invalid goal ID")
		return
	}

	var input domain.GoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	goal, err := h.goalService.Update(r.Context(), goalID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, goal)
}

// Delete handles deleting a goal
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		response.BadRequest(w, "invalid goal ID")
		return
	}

	if err := h.goalService.Delete(r.Context(), goalID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
