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

// TaskHandler handles task and tracking endpoints
type TaskHandler struct {
	taskService     *service.TaskService
	trackingService *service.TrackingService
	goalService     *service.GoalService
	resolver        *access.Resolver
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	taskService *service.TaskService,
	trackingService *service.TrackingService,
	goalService *service.GoalService,
	resolver *access.Resolver,
) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		trackingService: trackingService,
		goalService:     goalService,
		resolver:        resolver,
	}
}

// Create handles task creation. The target goal comes from the body, so
// authorization happens here instead of in route middleware.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.resolver.Authorize(r.Context(), userID, access.ResourceGoal, input.GoalID, access.ActionAddTask); err != nil {
		response.FromError(w, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, task)
}

// List handles listing the user's tasks with any open tracking record,
// optionally narrowed to one goal via the goal_id query parameter
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var goalID *uuid.UUID
	if raw := r.URL.Query().Get("goal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid goal_id")
			return
		}
		goalID = &id
	}

	tasks, err := h.taskService.ListWithTracking(r.Context(), userID, goalID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tasks)
}

// Get handles getting a task by ID
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid task ID")
		return
	}

	task, err := h.taskService.Get(r.Context(), taskID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, task)
}

// Update handles updating a task
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid task ID")
		return
	}

	var input domain.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, task)
}

// Delete handles deleting a task
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// Start opens a tracking record for a task
func (h *TaskHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid task ID")
		return
	}

	// Body is optional; an empty one means "start now"
	var input domain.TrackingStart
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
	}

	rec, err := h.trackingService.Start(r.Context(), userID, taskID, input.StartTime)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, rec)
}

// Stop closes a tracking record. The record is looked up scoped to the caller,
// so no permission middleware is involved.
func (h *TaskHandler) Stop(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	// The route is /tasks/{taskID}/stop for symmetry with start, but the
	// segment carries the tracking record id returned by start.
	trackingID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid tracking record ID")
		return
	}

	var input domain.TrackingStop
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
	}

	rec, err := h.trackingService.Stop(r.Context(), userID, trackingID, input.StopTime)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, rec)
}

// ManualRecord backfills a closed tracking record for a task
func (h *TaskHandler) ManualRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		response.BadRequest(w, "invalid task ID")
		return
	}

	var input domain.ManualRecordCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	rec, err := h.trackingService.RecordManual(r.Context(), userID, taskID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, rec)
}

// Summary aggregates the user's tracked time per task name for a period
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = domain.PeriodDay
	}

	var filter domain.SummaryFilter
	if raw := r.URL.Query().Get("workspace_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid workspace_id")
			return
		}
		filter.WorkspaceID = &id
	}
	if raw := r.URL.Query().Get("goal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid goal_id")
			return
		}
		filter.GoalID = &id
	}

	summary, err := h.trackingService.Summary(r.Context(), userID, period, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, summary)
}

// DailyBudget returns the summed time budget of a goal's tasks
func (h *TaskHandler) DailyBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "goalID"))
	if err != nil {
		response.BadRequest(w, "invalid goal ID")
		return
	}

	budget, err := h.goalService.DailyBudget(r.Context(), userID, goalID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, budget)
}
