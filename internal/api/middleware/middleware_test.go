package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	name, ok := Username(r.Context())
	if !ok {
		name = "anonymous"
	}
	_, _ = w.Write([]byte(name))
}

func withToken(t *testing.T, a *Authenticator, username string) *http.Request {
	t.Helper()
	token, err := a.IssueToken("user-1", username)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	return r
}

func TestOptionalAuth(t *testing.T) {
	a := NewAuthenticator("secret", nil)
	h := a.OptionalAuth(http.HandlerFunc(echoUser))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "anonymous", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, withToken(t, a, "alice"))
	require.Equal(t, "alice", w.Body.String())

	// A token signed with another key is ignored, not rejected.
	other := NewAuthenticator("other", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, withToken(t, other, "mallory"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "anonymous", w.Body.String())
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	a := NewAuthenticator("secret", nil)
	claims := &Claims{
		UserID:   "user-1",
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	w := httptest.NewRecorder()
	a.AuthMiddleware(http.HandlerFunc(echoUser)).ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	a := NewAuthenticator("secret", []string{"root"})
	h := a.RequireAdmin(http.HandlerFunc(echoUser))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, withToken(t, a, "alice"))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, withToken(t, a, "root"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "root", w.Body.String())
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/api/v1/resolve/123456":                  "/api/v1/resolve/{code}",
		"/api/v1/resolve/123456/files/2/download": "/api/v1/resolve/{code}/files/{index}/download",
		"/api/v1/shares":                          "/api/v1/shares",
		"/api/v1/shares/654321":                   "/api/v1/shares/{code}",
		"/api/v1/containers/box/open":             "/api/v1/containers/{name}/open",
		"/api/v1/containers/box/files/111111":     "/api/v1/containers/{name}/files/{code}",
		"/api/v1/files/presign":                   "/api/v1/files/presign",
		"/health":                                 "/health",
	}
	for in, want := range tests {
		require.Equal(t, want, normalizePath(in), in)
	}
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		h := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
