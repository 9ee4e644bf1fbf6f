package ocorrencia

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

const (
	StatusAberto    = "Aberto"
	StatusResolvido = "Resolvido"
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "ocorrência não encontrada")

	// ErrEdicaoBloqueada indica que a gestão já interveio e o autor
	// perdeu a janela de edição.
	ErrEdicaoBloqueada = apperr.New(apperr.CodePolicy, "ocorrência já em tratamento pela gestão").
				WithReason("EditWindowClosed")
)

// Ocorrencia representa um registro de incidente feito por um morador.
type Ocorrencia struct {
	ID            uuid.UUID  `json:"id"`
	AutorID       uuid.UUID  `json:"autor_id"`
	AutorNome     string     `json:"autor_nome"`
	Casa          int        `json:"casa"`
	Telefone      string     `json:"telefone"`
	Assunto       string     `json:"assunto"`
	Descricao     string     `json:"descricao"`
	Fotos         []string   `json:"fotos"`
	Status        string     `json:"status"`
	RespostaAdmin *string    `json:"resposta_admin,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Editavel informa se o autor ainda pode alterar o registro: só enquanto
// estiver aberto e sem resposta da gestão.
func (o *Ocorrencia) Editavel() bool {
	return o.Status == StatusAberto && o.RespostaAdmin == nil
}

// CreateInput encapsula os campos de abertura.
type CreateInput struct {
	AutorID   uuid.UUID
	AutorNome string
	Casa      int
	Telefone  string
	Assunto   string
	Descricao string
	Fotos     []string
}

// UpdateInput encapsula a revisão pelo autor.
type UpdateInput struct {
	ID        uuid.UUID
	Assunto   *string
	Descricao *string
	Telefone  *string
	Fotos     []string
}
