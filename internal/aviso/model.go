package aviso

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.CodeNotFound, "aviso não encontrado")

// Reações possíveis a um aviso.
const (
	ReacaoLike    = "like"
	ReacaoDislike = "dislike"
)

// Aviso é um comunicado da gestão para o condomínio.
type Aviso struct {
	ID        uuid.UUID  `json:"id"`
	Titulo    string     `json:"titulo"`
	Conteudo  string     `json:"conteudo"`
	AutorID   uuid.UUID  `json:"autor_id"`
	AutorNome string     `json:"autor_nome"`
	Inicio    *time.Time `json:"inicio,omitempty"`
	Fim       *time.Time `json:"fim,omitempty"`
	Fotos     []string   `json:"fotos"`
	Likes     []string   `json:"likes"`
	Dislikes  []string   `json:"dislikes"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateInput encapsula os campos de publicação.
type CreateInput struct {
	Titulo    string
	Conteudo  string
	AutorID   uuid.UUID
	AutorNome string
	Inicio    *time.Time
	Fim       *time.Time
	Fotos     []string
}

// UpdateInput encapsula a revisão de um aviso.
type UpdateInput struct {
	ID       uuid.UUID
	Titulo   *string
	Conteudo *string
	Inicio   *time.Time
	Fim      *time.Time
	Fotos    []string
}
