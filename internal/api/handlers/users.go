package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/api/apierror"
	"github.com/spendlog/server/internal/api/middleware"
	"github.com/spendlog/server/internal/domain/users"
)

// UserHandler handles user lookup and removal.
type UserHandler struct {
	service *users.Service
	logger  zerolog.Logger
	env     string
}

func NewUserHandler(service *users.Service, logger zerolog.Logger, env string) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  handlerLogger(logger, "users"),
		env:     env,
	}
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			apierror.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, newUserInfo(user))
}

// Delete handles DELETE /api/v1/users/{id}
// Deletion is scoped to the caller's own account; any other id behaves like
// a missing row, matching how category and record scoping answers.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if identity.UserID != id {
		apierror.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			apierror.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
