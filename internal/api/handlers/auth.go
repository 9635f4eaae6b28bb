package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/api/apierror"
	"github.com/spendlog/server/internal/auth"
	"github.com/spendlog/server/internal/domain/users"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service *users.Service
	tokens  *auth.JWTManager
	logger  zerolog.Logger
	env     string
}

func NewAuthHandler(service *users.Service, tokens *auth.JWTManager, logger zerolog.Logger, env string) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  handlerLogger(logger, "auth"),
		env:     env,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
	User      userInfo `json:"user"`
}

type userInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func newUserInfo(u *users.User) userInfo {
	return userInfo{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.env)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken):
			apierror.WriteMessage(w, http.StatusConflict, "Username is already taken")
		case errors.Is(err, users.ErrUsernameRequired):
			apierror.WriteMessage(w, http.StatusBadRequest, "Username is required")
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			apierror.WriteMessage(w, http.StatusBadRequest, err.Error())
		default:
			apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		}
		return
	}

	writeJSON(w, http.StatusCreated, newUserInfo(user))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.env)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			apierror.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	token, expiresAt, err := h.tokens.Generate(user.ID, user.Username)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to generate token")
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      newUserInfo(user),
	})
}
