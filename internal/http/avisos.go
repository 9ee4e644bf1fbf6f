package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tassiius1-pixel/condominio/internal/aviso"
	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/toast"
)

// ListAvisos lista os avisos publicados.
func (h *Handler) ListAvisos(w http.ResponseWriter, r *http.Request) {
	items, err := h.avisos.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateAviso publica um aviso. Restrito à gestão.
func (h *Handler) CreateAviso(w http.ResponseWriter, r *http.Request) {
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
		Titulo   string   `json:"titulo"`
		Conteudo string   `json:"conteudo"`
		Inicio   *string  `json:"inicio"`
		Fim      *string  `json:"fim"`
		Fotos    []string `json:"fotos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	inicio, err := parseOptionalDate(payload.Inicio)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "início inválido, use AAAA-MM-DD", nil)
		return
	}
	fim, err := parseOptionalDate(payload.Fim)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "fim inválido, use AAAA-MM-DD", nil)
		return
	}

	created, err := h.avisos.Create(r.Context(), httpmiddleware.GetPapel(r.Context()), aviso.CreateInput{
		Titulo:    payload.Titulo,
		Conteudo:  payload.Conteudo,
		AutorID:   autor.ID,
		AutorNome: autor.Nome,
		Inicio:    inicio,
		Fim:       fim,
		Fotos:     payload.Fotos,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível publicar o aviso")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Aviso publicado")
	WriteJSON(w, http.StatusCreated, created)
}

// UpdateAviso revisa um aviso existente. Restrito à gestão.
func (h *Handler) UpdateAviso(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var payload struct {
		Titulo   *string  `json:"titulo"`
		Conteudo *string  `json:"conteudo"`
		Inicio   *string  `json:"inicio"`
		Fim      *string  `json:"fim"`
		Fotos    []string `json:"fotos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	inicio, err := parseOptionalDate(payload.Inicio)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "início inválido, use AAAA-MM-DD", nil)
		return
	}
	fim, err := parseOptionalDate(payload.Fim)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "fim inválido, use AAAA-MM-DD", nil)
		return
	}

	updated, err := h.avisos.Update(r.Context(), httpmiddleware.GetPapel(r.Context()), aviso.UpdateInput{
		ID:       id,
		Titulo:   payload.Titulo,
		Conteudo: payload.Conteudo,
		Inicio:   inicio,
		Fim:      fim,
		Fotos:    payload.Fotos,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Aviso atualizado")
	WriteJSON(w, http.StatusOK, updated)
}

// ToggleAvisoReacao alterna like/dislike do usuário.
func (h *Handler) ToggleAvisoReacao(w http.ResponseWriter, r *http.Request) {
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
		Reacao string `json:"reacao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	updated, err := h.avisos.ToggleReacao(r.Context(), id, userID, payload.Reacao)
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// DeleteAviso exclui um aviso. Restrito à gestão.
func (h *Handler) DeleteAviso(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.avisos.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir o aviso")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Aviso excluído")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
