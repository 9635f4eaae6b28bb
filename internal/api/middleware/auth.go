package middleware

import (
	"context"
	"net/http"

	"github.com/spendlog/server/internal/api/apierror"
	"github.com/spendlog/server/internal/auth"
)

// Identity is the authenticated caller, derived from a verified bearer
// token and never from the request body.
type Identity struct {
	UserID   int64
	Username string
}

type contextKeyIdentity string

const identityKey contextKeyIdentity = "identity"

// RequireAuth validates the Authorization bearer token and stores the
// caller's identity in the request context. Missing, malformed, and expired
// tokens all yield 401.
func RequireAuth(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				apierror.WriteMessage(w, http.StatusUnauthorized, "Missing or invalid authorization header")
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				apierror.WriteMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				apierror.WriteMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			identity := &Identity{UserID: userID, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(contextWithIdentity(r.Context(), identity)))
		})
	}
}

func contextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ContextWithIdentity adds a caller identity to a context (exported for testing).
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return contextWithIdentity(ctx, identity)
}

// IdentityFromContext retrieves the caller identity, or nil outside an
// authenticated request.
func IdentityFromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}
