package api

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/spendlog/server/internal/api/handlers"
	"github.com/spendlog/server/internal/api/middleware"
	"github.com/spendlog/server/internal/auth"
	"github.com/spendlog/server/internal/config"
	"github.com/spendlog/server/internal/domain/categories"
	"github.com/spendlog/server/internal/domain/records"
	"github.com/spendlog/server/internal/domain/users"
	"github.com/spendlog/server/internal/metrics"
	"github.com/spendlog/server/internal/storage"
)

// NewRouter wires repositories, services, and handlers into the HTTP surface.
// publisher may be nil when no message broker is configured.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, repo storage.Repository, publisher records.EventPublisher) http.Handler {
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	userTx := func(ctx context.Context, fn func(context.Context, users.Repository) error) error {
		return repo.WithTx(ctx, func(ctx context.Context, tx storage.Repository) error {
			return fn(ctx, tx.Users())
		})
	}
	userService := users.NewService(repo.Users(), userTx, logger)
	categoryService := categories.NewService(repo.Categories())
	recordService := records.NewService(repo.Records(), repo.Categories(), publisher, logger)

	env := cfg.Environment
	authHandler := handlers.NewAuthHandler(userService, tokens, logger, env)
	userHandler := handlers.NewUserHandler(userService, logger, env)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger, env)
	recordHandler := handlers.NewRecordHandler(recordService, logger, env)

	requireAuth := middleware.RequireAuth(tokens)

	mux := http.NewServeMux()
	mux.Handle("/healthcheck", track("/healthcheck", http.HandlerFunc(handlers.Healthcheck)))
	mux.Handle("/readyz", track("/readyz", handlers.Readiness(pool)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/auth/register", track("/api/v1/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	})))
	mux.Handle("/api/v1/auth/login", track("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	})))

	mux.Handle("/api/v1/users/{id}", track("/api/v1/users/{id}", requireAuth(methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(userHandler.Get),
		http.MethodDelete: http.HandlerFunc(userHandler.Delete),
	}))))

	mux.Handle("/api/v1/categories", track("/api/v1/categories", requireAuth(methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(categoryHandler.List),
		http.MethodPost: http.HandlerFunc(categoryHandler.Create),
	}))))
	mux.Handle("/api/v1/categories/{id}", track("/api/v1/categories/{id}", requireAuth(methodMux(map[string]http.Handler{
		http.MethodDelete: http.HandlerFunc(categoryHandler.Delete),
	}))))

	mux.Handle("/api/v1/records", track("/api/v1/records", requireAuth(methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(recordHandler.List),
		http.MethodPost: http.HandlerFunc(recordHandler.Create),
	}))))
	mux.Handle("/api/v1/records/{id}", track("/api/v1/records/{id}", requireAuth(methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(recordHandler.Get),
		http.MethodDelete: http.HandlerFunc(recordHandler.Delete),
	}))))

	var handler http.Handler = mux
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

// track labels request metrics with the route pattern rather than the raw
// URL, keeping the cardinality bounded.
func track(pattern string, next http.Handler) http.Handler {
	return middleware.Metrics(pattern)(next)
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
