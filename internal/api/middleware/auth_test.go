package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlog/server/internal/auth"
)

func protectedHandler(t *testing.T, captured **Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthValidToken(t *testing.T) {
	manager := auth.NewJWTManager("middleware-secret", time.Hour, "spendlog-test")
	token, _, err := manager.Generate(42, "alice")
	require.NoError(t, err)

	var identity *Identity
	handler := RequireAuth(manager)(protectedHandler(t, &identity))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	manager := auth.NewJWTManager("middleware-secret", time.Hour, "spendlog-test")

	var identity *Identity
	handler := RequireAuth(manager)(protectedHandler(t, &identity))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, identity)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	manager := auth.NewJWTManager("middleware-secret", time.Hour, "spendlog-test")

	var identity *Identity
	handler := RequireAuth(manager)(protectedHandler(t, &identity))

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.Nil(t, identity)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager("middleware-secret", -time.Minute, "spendlog-test")
	token, _, err := expired.Generate(42, "alice")
	require.NoError(t, err)

	manager := auth.NewJWTManager("middleware-secret", time.Hour, "spendlog-test")
	var identity *Identity
	handler := RequireAuth(manager)(protectedHandler(t, &identity))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, identity)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	other := auth.NewJWTManager("other-secret", time.Hour, "spendlog-test")
	token, _, err := other.Generate(42, "alice")
	require.NoError(t, err)

	manager := auth.NewJWTManager("middleware-secret", time.Hour, "spendlog-test")
	var identity *Identity
	handler := RequireAuth(manager)(protectedHandler(t, &identity))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, identity)
}
