package documento

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

var ErrNotFound = apperr.New(apperr.CodeNotFound, "documento não encontrado")

// Documento é um arquivo publicado pela gestão (atas, regulamentos, boletos).
type Documento struct {
	ID             uuid.UUID `json:"id"`
	Titulo         string    `json:"titulo"`
	Descricao      string    `json:"descricao"`
	Categoria      string    `json:"categoria"`
	ArquivoURL     string    `json:"arquivo_url"`
	ArquivoNome    string    `json:"arquivo_nome"`
	ArquivoTipo    string    `json:"arquivo_tipo"`
	ArquivoTamanho int64     `json:"arquivo_tamanho"`
	EnviadoPor     uuid.UUID `json:"enviado_por"`
	Fixado         bool      `json:"fixado"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateInput encapsula os campos de publicação.
type CreateInput struct {
	Titulo         string
	Descricao      string
	Categoria      string
	ArquivoURL     string
	ArquivoNome    string
	ArquivoTipo    string
	ArquivoTamanho int64
	EnviadoPor     uuid.UUID
}
