package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pimsph/registry-backend/internal/auth"
	"github.com/pimsph/registry-backend/internal/utils"
)

const testSecret = "test-secret"

func protected(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var subject string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = utils.GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return TokenMiddleware(auth.NewJWTVerifier(testSecret))(handler), &subject
}

func TestTokenMiddleware_NoToken(t *testing.T) {
	h, _ := protected(t)
	req := httptest.NewRequest(http.MethodGet, "/voters", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
}

func TestTokenMiddleware_InvalidToken(t *testing.T) {
	h, _ := protected(t)
	req := httptest.NewRequest(http.MethodGet, "/voters", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestTokenMiddleware_ValidToken(t *testing.T) {
	h, subject := protected(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/voters", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *subject)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/voters", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}
