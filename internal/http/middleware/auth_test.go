package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/policy"
)

func newTestJWT(t *testing.T) *auth.JWTManager {
	t.Helper()
	return auth.NewJWTManager("segredo-de-teste-com-tamanho-bom", "condominio", time.Minute)
}

func TestAuthInjetaClaims(t *testing.T) {
	jwtManager := newTestJWT(t)
	token, _, err := jwtManager.GenerateAccessToken("11111111-1111-1111-1111-111111111111", []string{policy.RoleSindico})
	require.NoError(t, err)

	var gotSubject, gotPapel string
	handler := Auth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = GetSubject(r.Context())
		gotPapel = GetPapel(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/chamados", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", gotSubject)
	assert.Equal(t, policy.RoleSindico, gotPapel)
}

func TestAuthAceitaTokenViaQuery(t *testing.T) {
	jwtManager := newTestJWT(t)
	token, _, err := jwtManager.GenerateAccessToken("22222222-2222-2222-2222-222222222222", []string{policy.RoleMorador})
	require.NoError(t, err)

	called := false
	handler := Auth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// cliente SSE não envia header Authorization
	req := httptest.NewRequest(http.MethodGet, "/realtime/chamados?access_token="+token, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejeitaTokenAusenteOuInvalido(t *testing.T) {
	jwtManager := newTestJWT(t)
	handler := Auth(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chegar no handler")
	}))

	req := httptest.NewRequest(http.MethodGet, "/chamados", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/chamados", nil)
	req.Header.Set("Authorization", "Bearer token-adulterado")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejeitaOutroAudience(t *testing.T) {
	outro := auth.NewJWTManager("segredo-de-teste-com-tamanho-bom", "outro-sistema", time.Minute)
	token, _, err := outro.GenerateAccessToken("55555555-5555-5555-5555-555555555555", []string{policy.RoleAdmin})
	require.NoError(t, err)

	handler := Auth(newTestJWT(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chegar no handler")
	}))

	req := httptest.NewRequest(http.MethodGet, "/chamados", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireManagement(t *testing.T) {
	jwtManager := newTestJWT(t)

	cases := []struct {
		papel  string
		status int
	}{
		{policy.RoleSindico, http.StatusOK},
		{policy.RoleSubsindico, http.StatusOK},
		{policy.RoleGestao, http.StatusOK},
		{policy.RoleAdmin, http.StatusOK},
		{policy.RoleMorador, http.StatusForbidden},
	}

	for _, tc := range cases {
		token, _, err := jwtManager.GenerateAccessToken("33333333-3333-3333-3333-333333333333", []string{tc.papel})
		require.NoError(t, err)

		handler := Auth(jwtManager)(RequireManagement(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

		req := httptest.NewRequest(http.MethodPost, "/avisos", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code, tc.papel)
	}
}

func TestRequireAdmin(t *testing.T) {
	jwtManager := newTestJWT(t)

	for papel, status := range map[string]int{
		policy.RoleAdmin:   http.StatusOK,
		policy.RoleSindico: http.StatusForbidden,
		policy.RoleMorador: http.StatusForbidden,
	} {
		token, _, err := jwtManager.GenerateAccessToken("44444444-4444-4444-4444-444444444444", []string{papel})
		require.NoError(t, err)

		handler := Auth(jwtManager)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

		req := httptest.NewRequest(http.MethodDelete, "/moradores/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, status, rec.Code, papel)
	}
}
