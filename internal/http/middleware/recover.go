package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Recover garante resposta sanitizada em caso de panic, registrando a
// rota e a requisição que o provocaram.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				event := log.Error().Interface("panic", rec).
					Str("method", r.Method).Str("path", r.URL.Path).
					Bytes("stack", debug.Stack())
				if reqID := middleware.GetReqID(r.Context()); reqID != "" {
					event = event.Str("request_id", reqID)
				}
				event.Msg("panic recuperado")
				writeRecoverError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeRecoverError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    "INTERNAL",
			"message": "erro interno",
		},
	})
}
