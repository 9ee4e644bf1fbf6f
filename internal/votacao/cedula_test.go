package votacao

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var agora = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

func votacaoAtiva(opcoes int) *Votacao {
	v := buildVotacao(opcoes)
	v.Inicio = agora.AddDate(0, 0, -1)
	v.Fim = agora.AddDate(0, 0, 1)
	return v
}

func TestValidarCedulaAceitaVotoSimples(t *testing.T) {
	v := votacaoAtiva(2)

	err := ValidarCedula(v, VoteInput{Casa: 101, Opcoes: []uuid.UUID{v.Opcoes[0].ID}}, agora)
	assert.NoError(t, err)
}

func TestValidarCedulaVotoDuplicadoPorCasa(t *testing.T) {
	v := votacaoAtiva(2)
	vote(v, 101, v.Opcoes[0].ID)

	// segunda cédula da mesma casa, mesmo por outro morador e outra opção
	err := ValidarCedula(v, VoteInput{Casa: 101, MoradorID: uuid.New(), Opcoes: []uuid.UUID{v.Opcoes[1].ID}}, agora)
	assert.ErrorIs(t, err, ErrVotoDuplicado)

	// outra casa segue livre
	err = ValidarCedula(v, VoteInput{Casa: 202, Opcoes: []uuid.UUID{v.Opcoes[1].ID}}, agora)
	assert.NoError(t, err)
}

func TestValidarCedulaEscolhaInvalida(t *testing.T) {
	v := votacaoAtiva(2)

	// cédula vazia
	err := ValidarCedula(v, VoteInput{Casa: 101}, agora)
	assert.ErrorIs(t, err, ErrEscolhaInvalida)

	// opção de outra votação
	err = ValidarCedula(v, VoteInput{Casa: 101, Opcoes: []uuid.UUID{uuid.New()}}, agora)
	assert.ErrorIs(t, err, ErrEscolhaInvalida)

	// opção repetida
	err = ValidarCedula(v, VoteInput{Casa: 101, Opcoes: []uuid.UUID{v.Opcoes[0].ID, v.Opcoes[0].ID}}, agora)
	assert.ErrorIs(t, err, ErrEscolhaInvalida)

	// duas opções em votação de escolha única
	err = ValidarCedula(v, VoteInput{Casa: 101, Opcoes: []uuid.UUID{v.Opcoes[0].ID, v.Opcoes[1].ID}}, agora)
	assert.ErrorIs(t, err, ErrEscolhaInvalida)
}

func TestValidarCedulaMultiplaEscolha(t *testing.T) {
	v := votacaoAtiva(3)
	v.MultiplaEscolha = true

	err := ValidarCedula(v, VoteInput{Casa: 101, Opcoes: []uuid.UUID{v.Opcoes[0].ID, v.Opcoes[2].ID}}, agora)
	assert.NoError(t, err)
}

func TestValidarCedulaForaDoPeriodo(t *testing.T) {
	futura := votacaoAtiva(2)
	futura.Inicio = agora.AddDate(0, 0, 2)
	futura.Fim = agora.AddDate(0, 0, 5)
	err := ValidarCedula(futura, VoteInput{Casa: 101, Opcoes: []uuid.UUID{futura.Opcoes[0].ID}}, agora)
	assert.ErrorIs(t, err, ErrForaDoPeriodo)

	encerrada := votacaoAtiva(2)
	encerrada.Inicio = agora.AddDate(0, 0, -10)
	encerrada.Fim = agora.AddDate(0, 0, -2)
	err = ValidarCedula(encerrada, VoteInput{Casa: 101, Opcoes: []uuid.UUID{encerrada.Opcoes[0].ID}}, agora)
	assert.ErrorIs(t, err, ErrForaDoPeriodo)

	// o dia final vale até o último instante
	ultimoDia := votacaoAtiva(2)
	ultimoDia.Fim = time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
	err = ValidarCedula(ultimoDia, VoteInput{Casa: 101, Opcoes: []uuid.UUID{ultimoDia.Opcoes[0].ID}}, agora)
	assert.NoError(t, err)
}
