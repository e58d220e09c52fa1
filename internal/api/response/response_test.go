package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/focusflowhq/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing resource", domain.ErrResourceNotFound, http.StatusNotFound},
		{"missing record", domain.ErrRecordNotFound, http.StatusNotFound},
		{"no access", domain.ErrNoAccess, http.StatusForbidden},
		{"pending share", domain.ErrShareNotAccepted, http.StatusForbidden},
		{"no permission rows", domain.ErrNoPermissionDefined, http.StatusForbidden},
		{"flag denied", domain.ErrInsufficientPermission, http.StatusForbidden},
		{"already stopped", domain.ErrAlreadyStopped, http.StatusBadRequest},
		{"bad time range", domain.ErrInvalidTimeRange, http.StatusBadRequest},
		{"bad period", domain.ErrInvalidPeriod, http.StatusBadRequest},
		{"bad share response", domain.ErrInvalidShareResponse, http.StatusBadRequest},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"already shared", domain.ErrAlreadyShared, http.StatusConflict},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped denial keeps its status", fmt.Errorf("authorize workspace: %w", domain.ErrNoAccess), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestFromError_ActiveTaskCarriesDetails(t *testing.T) {
	taskID := uuid.New()
	rec := httptest.NewRecorder()

	FromError(rec, domain.NewActiveTaskError(taskID, "write report"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)

	detail, ok := body.Error.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, taskID.String(), detail["task_id"])
	assert.Equal(t, "write report", detail["task_name"])
}

func TestFromError_UnknownErrorsAreOpaque(t *testing.T) {
	rec := httptest.NewRecorder()

	FromError(rec, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
