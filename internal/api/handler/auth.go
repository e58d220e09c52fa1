package handler

import (
	"encoding/json"
	"net/http"

	"github.com/focusflowhq/backend/internal/api/middleware"
	"github.com/focusflowhq/backend/internal/api/response"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/focusflowhq/backend/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationMessages flattens validator errors into a field -> message map
func validationMessages(err error) any {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	errors := make(map[string]string)
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errors[e.Field()] = "field is required"
		case "email":
			errors[e.Field()] = "invalid email format"
		case "min":
			errors[e.Field()] = "must be at least " + e.Param() + " characters"
		case "max":
			errors[e.Field()] = "must be at most " + e.Param() + " characters"
		case "oneof":
			errors[e.Field()] = "must be one of: " + e.Param()
		case "gte":
			errors[e.Field()] = "must be at least " + e.Param()
		case "lte":
			errors[e.Field()] = "must be at most " + e.Param()
		default:
			errors[e.Field()] = "validation failed on " + e.Tag()
		}
	}
	return errors
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	result, err := h.authService.Register(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	result, err := h.authService.Login(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, result)
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, user)
}

// UpdateTimezone stores the user's IANA timezone
func (h *AuthHandler) UpdateTimezone(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.TimezoneUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	user, err := h.authService.UpdateTimezone(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, user)
}
