package morador

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "morador não encontrado")

	// ErrCPFDuplicado indica CPF já cadastrado.
	ErrCPFDuplicado = apperr.New(apperr.CodeConflict, "CPF já cadastrado")
	// ErrUsernameDuplicado indica nome de usuário em uso.
	ErrUsernameDuplicado = apperr.New(apperr.CodeConflict, "nome de usuário já em uso")
	// ErrCasaDuplicada indica casa já vinculada a outro morador.
	ErrCasaDuplicada = apperr.New(apperr.CodeConflict, "casa já vinculada a outro morador")
)

// Morador representa um usuário do condomínio.
type Morador struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Username  string    `json:"username"`
	CPF       string    `json:"cpf"`
	Casa      int       `json:"casa"`
	Papel     string    `json:"papel"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// SenhaHash nunca é serializado.
	SenhaHash string `json:"-"`
}

// CreateInput encapsula os campos do cadastro.
type CreateInput struct {
	Nome     string
	Username string
	CPF      string
	Casa     int
	Senha    string
}
