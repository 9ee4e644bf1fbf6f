package http

import (
	"encoding/json"
	"net/http"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/ocorrencia"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListOcorrencias lista as ocorrências registradas.
func (h *Handler) ListOcorrencias(w http.ResponseWriter, r *http.Request) {
	items, err := h.ocorrencias.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateOcorrencia registra um incidente em nome do usuário autenticado.
func (h *Handler) CreateOcorrencia(w http.ResponseWriter, r *http.Request) {
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
		Assunto   string   `json:"assunto"`
		Descricao string   `json:"descricao"`
		Telefone  string   `json:"telefone"`
		Fotos     []string `json:"fotos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	created, err := h.ocorrencias.Create(r.Context(), ocorrencia.CreateInput{
		AutorID:   autor.ID,
		AutorNome: autor.Nome,
		Casa:      autor.Casa,
		Telefone:  payload.Telefone,
		Assunto:   payload.Assunto,
		Descricao: payload.Descricao,
		Fotos:     payload.Fotos,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível registrar a ocorrência")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Ocorrência registrada")
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateOcorrencia revisa a ocorrência enquanto a janela do autor está aberta.
func (h *Handler) UpdateOcorrencia(w http.ResponseWriter, r *http.Request) {
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

	var payload struct {
		Assunto   *string  `json:"assunto"`
		Descricao *string  `json:"descricao"`
		Telefone  *string  `json:"telefone"`
		Fotos     []string `json:"fotos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.ocorrencias.Update(r.Context(), userID, ocorrencia.UpdateInput{
		ID:        id,
		Assunto:   payload.Assunto,
		Descricao: payload.Descricao,
		Telefone:  payload.Telefone,
		Fotos:     payload.Fotos,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível editar a ocorrência")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Ocorrência atualizada")
	WriteJSON(w, http.StatusOK, updated)
}

// RespondOcorrencia grava a resposta da gestão.
func (h *Handler) RespondOcorrencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Resposta string `json:"resposta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.ocorrencias.Respond(r.Context(), httpmiddleware.GetPapel(r.Context()), id, payload.Resposta)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Resposta enviada")
	WriteJSON(w, http.StatusOK, updated)
}

// ResolveOcorrencia marca a ocorrência como resolvida.
func (h *Handler) ResolveOcorrencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	updated, err := h.ocorrencias.Resolve(r.Context(), httpmiddleware.GetPapel(r.Context()), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Ocorrência resolvida")
	WriteJSON(w, http.StatusOK, updated)
}

// DeleteOcorrencia exclui a ocorrência. Restrito ao administrador.
func (h *Handler) DeleteOcorrencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.ocorrencias.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir a ocorrência")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Ocorrência excluída")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
