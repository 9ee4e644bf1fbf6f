package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	httpmiddleware "github.com/tassiius1-pixel/condominio/internal/http/middleware"
	"github.com/tassiius1-pixel/condominio/internal/toast"
	"github.com/tassiius1-pixel/condominio/internal/votacao"
)

// ListVotacoes lista votações com opções e cédulas.
func (h *Handler) ListVotacoes(w http.ResponseWriter, r *http.Request) {
	items, err := h.votacoes.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateVotacao abre uma votação. Restrito à gestão.
func (h *Handler) CreateVotacao(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	var payload struct {
		Titulo          string `json:"titulo"`
		Descricao       string `json:"descricao"`
		Inicio          string `json:"inicio"`
		Fim             string `json:"fim"`
		MultiplaEscolha bool   `json:"multipla_escolha"`
		Opcoes          []struct {
			Texto     string  `json:"texto"`
			ImagemURL *string `json:"imagem_url"`
		} `json:"opcoes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	inicio, err := time.Parse("2006-01-02", payload.Inicio)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "início inválido, use AAAA-MM-DD", nil)
		return
	}
	fim, err := time.Parse("2006-01-02", payload.Fim)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "fim inválido, use AAAA-MM-DD", nil)
		return
	}

	opcoes := make([]votacao.OpcaoInput, 0, len(payload.Opcoes))
	for _, op := range payload.Opcoes {
		opcoes = append(opcoes, votacao.OpcaoInput{Texto: op.Texto, ImagemURL: op.ImagemURL})
	}

	created, err := h.votacoes.Create(r.Context(), httpmiddleware.GetPapel(r.Context()), votacao.CreateInput{
		Titulo:          payload.Titulo,
		Descricao:       payload.Descricao,
		Inicio:          inicio,
		Fim:             fim,
		MultiplaEscolha: payload.MultiplaEscolha,
		CriadoPor:       userID,
		Opcoes:          opcoes,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível criar a votação")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Votação criada")
	WriteJSON(w, http.StatusCreated, created)
}

// CastVote registra o voto da casa do usuário autenticado.
func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
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
		Opcoes []uuid.UUID `json:"opcoes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	cedula, err := h.votacoes.CastVote(r.Context(), votacao.VoteInput{
		VotacaoID: id,
		Casa:      autor.Casa,
		MoradorID: autor.ID,
		Nome:      autor.Nome,
		Opcoes:    payload.Opcoes,
	})
	if err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível registrar o voto")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Voto registrado")
	WriteJSON(w, http.StatusCreated, cedula)
}

// VotacaoResultado devolve a apuração atual.
func (h *Handler) VotacaoResultado(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	resultado, err := h.votacoes.Results(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resultado)
}

// DeleteVotacao exclui a votação e suas cédulas. Restrito à gestão.
func (h *Handler) DeleteVotacao(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.votacoes.Delete(r.Context(), httpmiddleware.GetPapel(r.Context()), id); err != nil {
		h.pushToast(r, toast.KindError, "Não foi possível excluir a votação")
		writeAppError(w, err)
		return
	}

	h.pushToast(r, toast.KindSuccess, "Votação excluída")
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
