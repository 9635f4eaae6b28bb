package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthcheck handles GET /healthcheck. It reports liveness only and never
// touches the database.
func Healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "OK",
		Message: "Backend is functional",
	})
}

// Readiness returns a handler for GET /readyz that pings the database.
func Readiness(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "unavailable",
				Message: "database unreachable",
			})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Message: "ready",
		})
	}
}
