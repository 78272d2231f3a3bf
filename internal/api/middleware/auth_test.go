package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logistics-crm/internal/api/reqctx"
	"logistics-crm/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(t *testing.T, captured **auth.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = reqctx.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	resolver := auth.NewTokenResolver("secret")
	token := resolver.Issue("u1", time.Hour)

	var got *auth.Identity
	h := Authenticate(resolver)(identityEcho(t, &got))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
}

func TestAuthenticate_InvalidTokenIsAnonymous(t *testing.T) {
	resolver := auth.NewTokenResolver("secret")

	var got *auth.Identity
	h := Authenticate(resolver)(identityEcho(t, &got))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Nil(t, got)
}

func TestAuthenticate_NoHeaderIsAnonymous(t *testing.T) {
	resolver := auth.NewTokenResolver("secret")

	var got *auth.Identity
	h := Authenticate(resolver)(identityEcho(t, &got))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, got)
}

func TestRequireIdentity_RejectsAnonymous(t *testing.T) {
	h := RequireIdentity(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireIdentity_PassesResolved(t *testing.T) {
	h := RequireIdentity(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(reqctx.WithIdentity(r.Context(), &auth.Identity{UserID: "u1"}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
