package http

import (
	"encoding/json"
	"net/http"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/morador"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// pushToast enfileira o resultado da mutação para o usuário da requisição.
func (h *Handler) pushToast(r *http.Request, kind toast.Kind, text string) {
	userID := httpmiddleware.GetSubject(r.Context())
	if userID == "" {
		return
	}
	h.toasts.Push(userID, kind, text)
}

// ListMoradores lista os moradores cadastrados.
func (h *Handler) ListMoradores(w http.ResponseWriter, r *http.Request) {
	items, err := h.moradores.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateMorador cadastra um morador. Restrito ao administrador.
func (h *Handler) CreateMorador(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nome     string `json:"nome"`
		Username string `json:"username"`
		CPF      string `json:"cpf"`
		Casa     int    `json:"casa"`
		Senha    string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	created, err := h.moradores.Create(r.Context(), morador.CreateInput{
		Nome:     payload.Nome,
		Username: payload.Username,
		CPF:      payload.CPF,
		Casa:     payload.Casa,
		Senha:    payload.Senha,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível cadastrar o morador")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Morador cadastrado")
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateMoradorPapel altera o papel de um morador. Restrito ao administrador.
func (h *Handler) UpdateMoradorPapel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Papel string `json:"papel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.moradores.UpdatePapel(r.Context(), httpmiddleware.GetPapel(r.Context()), id, payload.Papel)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Papel atualizado")
	WriteJSON(w, http.StatusOK, updated)
}

// DeleteMorador exclui o morador e revoga suas sessões.
func (h *Handler) DeleteMorador(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.moradores.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir o morador")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Morador excluído")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
