package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/goodluckfit/fitauth/internal/api/apierr"
	"github.com/goodluckfit/fitauth/internal/api/middleware"
	"github.com/goodluckfit/fitauth/internal/api/request"
	"github.com/goodluckfit/fitauth/internal/api/response"
	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/services/auth"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username and password are required"))
		return
	}

	user, signed, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		// Unknown username on login is a 400, unlike the 404 used on
		// token-authenticated routes
		if errors.Is(err, model.ErrUserNotFound) {
			apierr.WriteError(w, apierr.New(http.StatusBadRequest, "user not found"))
			return
		}
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.LoginData{
		Token: signed,
		User:  response.UserFromModel(user),
	}, "login successful")
}

// LoginPreflight handles OPTIONS /auth/login (CORS preflight)
func (h *AuthHandler) LoginPreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username and password are required"))
		return
	}
	// Length limits count characters, not bytes
	if utf8.RuneCountInString(username) < 3 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username must be at least 3 characters"))
		return
	}
	if utf8.RuneCountInString(password) < 6 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password must be at least 6 characters"))
		return
	}

	if _, err := h.authService.Register(r.Context(), username, password, req.Height, req.Weight); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, nil, "registration successful")
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.UserFromModel(user), "")
}

// ChangePassword handles PUT /auth/change_password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, nil, "password updated")
}

// UpdateProfile handles PUT /auth/update_simple_profile.
// Fields omitted from the request body are left unchanged; the password
// cannot be changed through this endpoint.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	update := model.UserUpdate{
		Height: req.Height,
		Weight: req.Weight,
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if trimmed == "" {
			apierr.WriteError(w, apierr.NewInvalidRequestError("username must not be empty"))
			return
		}
		update.Username = &trimmed
	}

	if err := h.authService.UpdateProfile(r.Context(), userID, update); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, nil, "profile updated")
}

// Refresh handles GET /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	signed, err := h.authService.Refresh(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.TokenData{Token: signed}, "token refreshed")
}
