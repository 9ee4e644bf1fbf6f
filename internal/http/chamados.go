package http

import (
	"encoding/json"
	"net/http"

	"github.com/tassiius1-pixel/condominio/internal/chamado"
	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListChamados lista os chamados, mais recentes primeiro.
func (h *Handler) ListChamados(w http.ResponseWriter, r *http.Request) {
	items, err := h.chamados.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetChamado retorna um chamado com seus comentários.
func (h *Handler) GetChamado(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	item, err := h.chamados.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// CreateChamado abre um chamado em nome do usuário autenticado.
func (h *Handler) CreateChamado(w http.ResponseWriter, r *http.Request) {
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
		Titulo     string   `json:"titulo"`
		Descricao  string   `json:"descricao"`
		Setor      string   `json:"setor"`
		Tipo       string   `json:"tipo"`
		Prioridade string   `json:"prioridade"`
		Fotos      []string `json:"fotos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	created, err := h.chamados.Create(r.Context(), chamado.CreateInput{
		Titulo:     payload.Titulo,
		Descricao:  payload.Descricao,
		Setor:      payload.Setor,
		Tipo:       payload.Tipo,
		Prioridade: payload.Prioridade,
		Fotos:      payload.Fotos,
		AutorID:    autor.ID,
		AutorNome:  autor.Nome,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível abrir o chamado")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Chamado aberto")
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateChamado revisa campos do chamado. Restrito à gestão.
func (h *Handler) UpdateChamado(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Titulo        *string  `json:"titulo"`
		Descricao     *string  `json:"descricao"`
		Fotos         []string `json:"fotos"`
		RespostaAdmin *string  `json:"resposta_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.chamados.Update(r.Context(), httpmiddleware.GetPapel(r.Context()), chamado.UpdateInput{
		ID:            id,
		Titulo:        payload.Titulo,
		Descricao:     payload.Descricao,
		Fotos:         payload.Fotos,
		RespostaAdmin: payload.RespostaAdmin,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Chamado atualizado")
	WriteJSON(w, http.StatusOK, updated)
}

// ChangeChamadoStatus move o chamado de status, com justificativa opcional.
func (h *Handler) ChangeChamadoStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Status        string  `json:"status"`
		Justificativa *string `json:"justificativa"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.chamados.ChangeStatus(r.Context(), httpmiddleware.GetPapel(r.Context()), id, payload.Status, payload.Justificativa)
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível mudar o status")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Status atualizado")
	WriteJSON(w, http.StatusOK, updated)
}

// ToggleChamadoLike alterna o apoio do usuário ao chamado.
func (h *Handler) ToggleChamadoLike(w http.ResponseWriter, r *http.Request) {
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

	likes, err := h.chamados.ToggleLike(r.Context(), id, userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

// AddChamadoComment acrescenta comentário ao chamado.
func (h *Handler) AddChamadoComment(w http.ResponseWriter, r *http.Request) {
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

	autor, err := h.moradores.Get(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var payload struct {
		Corpo string `json:"corpo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	com, err := h.chamados.AddComment(r.Context(), chamado.CommentInput{
		ChamadoID: id,
		AutorID:   &autor.ID,
		AutorNome: autor.Nome,
		Corpo:     payload.Corpo,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, com)
}

// DeleteChamado exclui o chamado. Restrito à gestão.
func (h *Handler) DeleteChamado(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.chamados.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir o chamado")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Chamado excluído")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
