package http

import (
	"fmt"
	"net/http"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListNotificacoes lista as notificações visíveis ao usuário.
func (h *Handler) ListNotificacoes(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	items, err := h.notificacoes.ListFor(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// UnreadNotificacoes devolve a contagem de não lidas para o sino.
func (h *Handler) UnreadNotificacoes(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	count, err := h.notificacoes.UnreadCount(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"nao_lidas": count})
}

// MarkNotificacoesRead marca todas como lidas. Repetir não muda nada.
func (h *Handler) MarkNotificacoesRead(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	updated, err := h.notificacoes.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"marcadas": updated})
}

// DeleteNotificacao remove uma notificação do usuário.
func (h *Handler) DeleteNotificacao(w http.ResponseWriter, r *http.Request) {
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

	if err := h.notificacoes.Delete(r.Context(), userID, httpmiddleware.GetPapel(r.Context()), id); err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteAllNotificacoes limpa o sino inteiro e resume em um único toast.
func (h *Handler) DeleteAllNotificacoes(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	deleted, err := h.notificacoes.DeleteAll(r.Context(), userID, httpmiddleware.GetPapel(r.Context()))
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível limpar as notificações")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, fmt.Sprintf("%d notificações removidas", deleted))
	WriteJSON(w, http.StatusOK, map[string]int64{"removidas": deleted})
}
