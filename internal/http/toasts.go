package http

import (
	"net/http"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
)

// DrainToasts entrega e consome as mensagens pendentes do usuário.
func (h *Handler) DrainToasts(w http.ResponseWriter, r *http.Request) {
	userID := httpmiddleware.GetSubject(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	WriteJSON(w, http.StatusOK, h.toasts.Drain(userID))
}
