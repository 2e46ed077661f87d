package handler

import (
	"encoding/json"
	"net/http"

	"github.com/convocraft/backend/internal/api/middleware"
	"github.com/convocraft/backend/internal/api/response"
	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.ResetService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, resetService *service.ResetService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
	}
}

// Signup handles account registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	profile, err := h.authService.Signup(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, profile)
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	tokens, err := h.authService.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, tokens)
}

// Me returns the current authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	profile, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, profile)
}

// RequestReset issues a password reset code. The code is echoed in the
// response body: there is no out-of-band delivery channel in the default
// configuration.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var input domain.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	code, err := h.resetService.RequestReset(r.Context(), input.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"code": code})
}

// CompleteReset consumes a reset code and sets the new password
func (h *AuthHandler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	var input domain.CompleteResetRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return
	}

	if err := h.resetService.CompleteReset(r.Context(), input.Email, input.Code, input.NewPassword); err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "password updated"})
}

func validationMessages(err error) any {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	errors := make(map[string]string)
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errors[field] = "field is required"
		case "email":
			errors[field] = "invalid email format"
		case "min":
			errors[field] = "must be at least " + e.Param() + " characters"
		case "max":
			errors[field] = "must be at most " + e.Param() + " characters"
		case "len":
			errors[field] = "must be exactly " + e.Param() + " characters"
		case "numeric":
			errors[field] = "must be numeric"
		default:
			errors[field] = "validation failed on " + e.Tag()
		}
	}
	return errors
}
