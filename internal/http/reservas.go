package http

import (
	"encoding/json"
	"net/http"
	"time"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/reserva"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListReservas lista todas as reservas.
func (h *Handler) ListReservas(w http.ResponseWriter, r *http.Request) {
	items, err := h.reservas.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateReserva grava uma reserva para a casa do usuário autenticado.
// O nome vem sempre do cadastro; a casa também, exceto quando um papel
// isento informa `casa` para reservar em nome de outra unidade.
func (h *Handler) CreateReserva(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	autor, err := h.moradores.Get(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var payload struct {
		Dia  string `json:"dia"`
		Area string `json:"area"`
		Casa *int   `json:"casa,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	dia, err := time.Parse("2006-01-02", payload.Dia)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "dia inválido, use AAAA-MM-DD", nil)
		return
	}

	created, err := h.reservas.Create(r.Context(), reserva.CreateInput{
		MoradorID:   autor.ID,
		Nome:        autor.Nome,
		Casa:        autor.Casa,
		CasaDestino: payload.Casa,
		Dia:         dia,
		Area:        payload.Area,
		Papel:       autor.Papel,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível reservar")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Reserva confirmada")
	WriteJSON(w, http.StatusCreated, created)
}

// CancelReserva remove a reserva do dono ou, para a gestão, qualquer uma.
func (h *Handler) CancelReserva(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	if err := h.reservas.Cancel(r.Context(), id, userID, httpmiddleware.GetPapel(r.Context())); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível cancelar a reserva")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Reserva cancelada")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
