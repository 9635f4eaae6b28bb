package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/api/apierror"
	"github.com/spendlog/server/internal/api/middleware"
	"github.com/spendlog/server/internal/domain/categories"
)

// CategoryHandler handles spending category endpoints.
type CategoryHandler struct {
	service *categories.Service
	logger  zerolog.Logger
	env     string
}

func NewCategoryHandler(service *categories.Service, logger zerolog.Logger, env string) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  handlerLogger(logger, "categories"),
		env:     env,
	}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type categoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID *int64 `json:"user_id"`
}

func newCategoryResponse(c *categories.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, UserID: c.OwnerID}
}

// List handles GET /api/v1/categories
// Returns global categories plus the caller's own.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	list, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	out := make([]categoryResponse, 0, len(list))
	for i := range list {
		out = append(out, newCategoryResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.env)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	category, err := h.service.Create(r.Context(), req.Name, identity.UserID)
	if err != nil {
		if errors.Is(err, categories.ErrNameRequired) {
			apierror.WriteMessage(w, http.StatusBadRequest, "Name is required")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusCreated, newCategoryResponse(category))
}

// Delete handles DELETE /api/v1/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, categories.ErrNotFound) {
			apierror.WriteMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
