package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spendlog/server/internal/api/apierror"
	"github.com/spendlog/server/internal/api/middleware"
	"github.com/spendlog/server/internal/domain/records"
)

// RecordHandler handles spending record endpoints.
type RecordHandler struct {
	service *records.Service
	logger  zerolog.Logger
	env     string
}

func NewRecordHandler(service *records.Service, logger zerolog.Logger, env string) *RecordHandler {
	return &RecordHandler{
		service: service,
		logger:  handlerLogger(logger, "records"),
		env:     env,
	}
}

type createRecordRequest struct {
	CategoryID int64    `json:"category_id" validate:"required,gt=0"`
	Amount     *float64 `json:"amount" validate:"required"`
}

type recordResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	CategoryID int64   `json:"category_id"`
	Amount     float64 `json:"amount"`
	Timestamp  string  `json:"timestamp"`
}

func newRecordResponse(rec *records.Record) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		UserID:     rec.UserID,
		CategoryID: rec.CategoryID,
		Amount:     rec.Amount,
		Timestamp:  rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/v1/records
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err, h.env)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	record, err := h.service.Create(r.Context(), identity.UserID, req.CategoryID, *req.Amount)
	if err != nil {
		if errors.Is(err, records.ErrCategoryNotFound) {
			apierror.WriteMessage(w, http.StatusBadRequest, "Category does not exist")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusCreated, newRecordResponse(record))
}

// List handles GET /api/v1/records with an optional category_id filter.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var filters records.Filters
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			apierror.WriteMessage(w, http.StatusBadRequest, "Invalid category_id filter")
			return
		}
		filters.CategoryID = &id
	}

	list, err := h.service.List(r.Context(), identity.UserID, filters)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	out := make([]recordResponse, 0, len(list))
	for i := range list {
		out = append(out, newRecordResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/records/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	record, err := h.service.Get(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apierror.WriteMessage(w, http.StatusNotFound, "Record not found")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, newRecordResponse(record))
}

// Delete handles DELETE /api/v1/records/{id}
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		apierror.WriteMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := pathID(r)
	if err != nil {
		apierror.WriteMessage(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			apierror.WriteMessage(w, http.StatusNotFound, "Record not found")
			return
		}
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err, h.env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
