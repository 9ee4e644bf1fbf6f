package chamado

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Status possíveis de um chamado.
const (
	StatusPendente    = "PENDENTE"
	StatusEmAnalise   = "EM_ANALISE"
	StatusEmAndamento = "EM_ANDAMENTO"
	StatusAprovada    = "APROVADA"
	StatusRecusada    = "RECUSADA"
	StatusConcluido   = "CONCLUIDO"
	StatusEmVotacao   = "EM_VOTACAO"
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "chamado não encontrado")

	// ErrStatusInvalido indica status fora do conjunto aceito.
	ErrStatusInvalido = apperr.New(apperr.CodeValidation, "status inválido")
)

var validStatuses = map[string]struct{}{
	StatusPendente:    {},
	StatusEmAnalise:   {},
	StatusEmAndamento: {},
	StatusAprovada:    {},
	StatusRecusada:    {},
	StatusConcluido:   {},
	StatusEmVotacao:   {},
}

// Chamado representa uma solicitação de manutenção ou melhoria.
type Chamado struct {
	ID            uuid.UUID    `json:"id"`
	Titulo        string       `json:"titulo"`
	Descricao     string       `json:"descricao"`
	Setor         string       `json:"setor"`
	Tipo          string       `json:"tipo"`
	Status        string       `json:"status"`
	Prioridade    string       `json:"prioridade"`
	Fotos         []string     `json:"fotos"`
	AutorID       uuid.UUID    `json:"autor_id"`
	AutorNome     string       `json:"autor_nome"`
	Likes         []string     `json:"likes"`
	RespostaAdmin *string      `json:"resposta_admin,omitempty"`
	Comentarios   []Comentario `json:"comentarios"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Comentario é uma interação no chamado; a lista é só de inserção.
type Comentario struct {
	ID        uuid.UUID  `json:"id"`
	ChamadoID uuid.UUID  `json:"chamado_id"`
	AutorID   *uuid.UUID `json:"autor_id,omitempty"`
	AutorNome string     `json:"autor_nome"`
	Corpo     string     `json:"corpo"`
	Sistema   bool       `json:"sistema"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateInput encapsula os campos para abertura de chamado.
type CreateInput struct {
	Titulo     string
	Descricao  string
	Setor      string
	Tipo       string
	Prioridade string
	Fotos      []string
	AutorID    uuid.UUID
	AutorNome  string
}

// UpdateInput permite à gestão revisar título, descrição, fotos
// e a resposta oficial.
type UpdateInput struct {
	ID            uuid.UUID
	Titulo        *string
	Descricao     *string
	Fotos         []string
	RespostaAdmin *string
}

// CommentInput encapsula novo comentário.
type CommentInput struct {
	ChamadoID uuid.UUID
	AutorID   *uuid.UUID
	AutorNome string
	Corpo     string
	Sistema   bool
}

// NormalizeStatus padroniza o status em maiúsculas.
func NormalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// IsValidStatus indica se o status é aceito.
func IsValidStatus(status string) bool {
	_, ok := validStatuses[NormalizeStatus(status)]
	return ok
}
