package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/spendlog/server/internal/metrics"
)

// Metrics records request count, latency, and the in-flight gauge. route is
// the registered pattern, not the raw URL, keeping label cardinality bounded.
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode())).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
