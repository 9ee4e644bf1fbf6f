package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestUserRateLimitPorSubject(t *testing.T) {
	limiter := NewRateLimiter(0, 1)
	handler := UserRateLimit(limiter)(okHandler())

	doReq := func(subject string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/avisos", nil)
		ctx := context.WithValue(req.Context(), ContextKeySubject, subject)
		ctx = context.WithValue(ctx, ContextKeyRoles, []string{"MORADOR"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, doReq("morador-a"))
	require.Equal(t, http.StatusTooManyRequests, doReq("morador-a"))

	// Outro morador tem cota própria.
	require.Equal(t, http.StatusOK, doReq("morador-b"))
}

func TestUserRateLimitAnonimoCaiParaIP(t *testing.T) {
	limiter := NewRateLimiter(0, 1)
	handler := UserRateLimit(limiter)(okHandler())

	doReq := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/avisos", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, doReq("10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, doReq("10.0.0.1"))
	require.Equal(t, http.StatusOK, doReq("10.0.0.2"))
}

func TestRealIPPrefereHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.9:51234"
	require.Equal(t, "192.168.1.9", realIPFromRequest(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "203.0.113.7", realIPFromRequest(req))

	req.Header.Set("X-Real-IP", "198.51.100.4")
	require.Equal(t, "198.51.100.4", realIPFromRequest(req))
}
