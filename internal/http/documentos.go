package http

import (
	"encoding/json"
	"net/http"

	"github.com/tassiius1-pixel/condominio/internal/documento"
	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListDocumentos lista documentos, fixados primeiro.
func (h *Handler) ListDocumentos(w http.ResponseWriter, r *http.Request) {
	items, err := h.documentos.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateDocumento publica um documento já enviado ao armazenamento.
func (h *Handler) CreateDocumento(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	var payload struct {
		Titulo         string `json:"titulo"`
		Descricao      string `json:"descricao"`
		Categoria      string `json:"categoria"`
		ArquivoURL     string `json:"arquivo_url"`
		ArquivoNome    string `json:"arquivo_nome"`
		ArquivoTipo    string `json:"arquivo_tipo"`
		ArquivoTamanho int64  `json:"arquivo_tamanho"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	created, err := h.documentos.Create(r.Context(), httpmiddleware.GetPapel(r.Context()), documento.CreateInput{
		Titulo:         payload.Titulo,
		Descricao:      payload.Descricao,
		Categoria:      payload.Categoria,
		ArquivoURL:     payload.ArquivoURL,
		ArquivoNome:    payload.ArquivoNome,
		ArquivoTipo:    payload.ArquivoTipo,
		ArquivoTamanho: payload.ArquivoTamanho,
		EnviadoPor:     userID,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível publicar o documento")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Documento publicado")
	WriteJSON(w, http.StatusCreated, created)
}

// TogglePinDocumento fixa ou desafixa o documento.
func (h *Handler) TogglePinDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	updated, err := h.documentos.TogglePin(r.Context(), httpmiddleware.GetPapel(r.Context()), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// DeleteDocumento exclui o documento. Restrito à gestão.
func (h *Handler) DeleteDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.documentos.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir o documento")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Documento excluído")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
