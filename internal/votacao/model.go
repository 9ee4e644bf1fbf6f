package votacao

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Status derivado do calendário; nunca persistido.
const (
	StatusFutura    = "future"
	StatusAtiva     = "active"
	StatusEncerrada = "closed"
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "votação não encontrada")

	// ErrVotoDuplicado indica que a casa já votou nesta votação.
	ErrVotoDuplicado = apperr.New(apperr.CodeConflict, "esta casa já votou").WithReason("DuplicateVote")
	// ErrEscolhaInvalida indica cédula vazia, opção desconhecida ou múltipla escolha indevida.
	ErrEscolhaInvalida = apperr.New(apperr.CodeValidation, "escolha inválida").WithReason("InvalidChoice")
	// ErrForaDoPeriodo indica votação fora da janela ativa.
	ErrForaDoPeriodo = apperr.New(apperr.CodePolicy, "votação fora do período ativo")
)

// Opcao é uma alternativa da votação.
type Opcao struct {
	ID        uuid.UUID `json:"id"`
	Texto     string    `json:"texto"`
	ImagemURL *string   `json:"imagem_url,omitempty"`
	Posicao   int       `json:"posicao"`
}

// Cedula é o voto imutável de uma casa.
type Cedula struct {
	ID        uuid.UUID   `json:"id"`
	VotacaoID uuid.UUID   `json:"votacao_id"`
	Casa      int         `json:"casa"`
	MoradorID uuid.UUID   `json:"morador_id"`
	Nome      string      `json:"nome"`
	Opcoes    []uuid.UUID `json:"opcoes"`
	CreatedAt time.Time   `json:"created_at"`
}

// Votacao agrega período, opções e cédulas registradas.
type Votacao struct {
	ID              uuid.UUID `json:"id"`
	Titulo          string    `json:"titulo"`
	Descricao       string    `json:"descricao"`
	Inicio          time.Time `json:"inicio"`
	Fim             time.Time `json:"fim"`
	MultiplaEscolha bool      `json:"multipla_escolha"`
	CriadoPor       uuid.UUID `json:"criado_por"`
	Opcoes          []Opcao   `json:"opcoes"`
	Cedulas         []Cedula  `json:"cedulas"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateInput encapsula os campos de criação de votação.
type CreateInput struct {
	Titulo          string
	Descricao       string
	Inicio          time.Time
	Fim             time.Time
	MultiplaEscolha bool
	CriadoPor       uuid.UUID
	Opcoes          []OpcaoInput
}

// OpcaoInput descreve uma alternativa na criação.
type OpcaoInput struct {
	Texto     string
	ImagemURL *string
}

// VoteInput descreve a intenção de voto.
type VoteInput struct {
	VotacaoID uuid.UUID
	Casa      int
	MoradorID uuid.UUID
	Nome      string
	Opcoes    []uuid.UUID
}

// Status calcula o estado da votação a partir das datas, com o fim
// inclusivo até o último instante do dia.
func Status(now, inicio, fim time.Time) string {
	if now.Before(inicio) {
		return StatusFutura
	}
	endOfDay := time.Date(fim.Year(), fim.Month(), fim.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), fim.Location())
	if now.After(endOfDay) {
		return StatusEncerrada
	}
	return StatusAtiva
}

// StatusOf é atalho para o status corrente da votação.
func (v *Votacao) StatusOf(now time.Time) string {
	return Status(now, v.Inicio, v.Fim)
}
