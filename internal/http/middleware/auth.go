package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/policy"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyRoles   contextKey = "roles"
)

// Auth valida JWT de acesso e injeta claims no contexto.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "AUTH", "token ausente")
				return
			}

			claims, err := jwtManager.ParseAndValidate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyRoles, claims.Roles)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	// SSE do navegador não envia headers; aceita o token via query.
	return r.URL.Query().Get("access_token")
}

// GetSubject recupera subject do contexto.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetRoles recupera roles do contexto.
func GetRoles(ctx context.Context) []string {
	val, _ := ctx.Value(ContextKeyRoles).([]string)
	return val
}

// GetPapel retorna o papel principal do usuário no condomínio.
func GetPapel(ctx context.Context) string {
	roles := GetRoles(ctx)
	if len(roles) == 0 {
		return ""
	}
	return policy.NormalizeRole(roles[0])
}

// RequireManagement restringe a rota a papéis de gestão.
func RequireManagement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !policy.IsManagement(GetPapel(r.Context())) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito à gestão")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin restringe a rota ao administrador.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPapel(r.Context()) != policy.RoleAdmin {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "acesso restrito ao administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
