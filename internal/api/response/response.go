package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(resp)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: false,
		Error:   message,
	}

	json.NewEncoder(w).Encode(resp)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, message any) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict response
func Conflict(w http.ResponseWriter, message any) {
	Error(w, http.StatusConflict, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message any) {
	Error(w, http.StatusInternalServerError, message)
}

// FromError maps a domain error to its HTTP status. Anything unrecognized is
// treated as an infrastructure failure: logged server-side, returned as an
// opaque 500 so internals never leak to clients.
func FromError(w http.ResponseWriter, err error) {
	var activeErr *domain.ActiveTaskError
	if errors.As(err, &activeErr) {
		Error(w, http.StatusBadRequest, map[string]any{
			"message":   activeErr.Error(),
			"task_id":   activeErr.Active.TaskID,
			"task_name": activeErr.Active.TaskName,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrResourceNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, domain.ErrNoAccess),
		errors.Is(err, domain.ErrShareNotAccepted),
		errors.Is(err, domain.ErrNoPermissionDefined),
		errors.Is(err, domain.ErrInsufficientPermission):
		Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrAlreadyStopped),
		errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidShareResponse),
		errors.Is(err, domain.ErrOpenRecordExists):
		BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrAlreadyShared),
		errors.Is(err, domain.ErrShareNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		InternalError(w, "internal server error")
	}
}
