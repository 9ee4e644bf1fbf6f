package votacao

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVotacao(opcoes int) *Votacao {
	v := &Votacao{ID: uuid.New(), Titulo: "Pintura da fachada"}
	for i := 0; i < opcoes; i++ {
		v.Opcoes = append(v.Opcoes, Opcao{ID: uuid.New(), Texto: string(rune('A' + i)), Posicao: i})
	}
	return v
}

func vote(v *Votacao, casa int, opcoes ...uuid.UUID) {
	v.Cedulas = append(v.Cedulas, Cedula{
		ID:        uuid.New(),
		VotacaoID: v.ID,
		Casa:      casa,
		Opcoes:    opcoes,
	})
}

func TestTallyEmpty(t *testing.T) {
	v := buildVotacao(2)
	res := Tally(v)

	assert.Equal(t, 0, res.TotalCedulas)
	for _, opcao := range res.Opcoes {
		assert.Equal(t, 0, opcao.Votos)
		assert.Equal(t, 0, opcao.Percentual)
		assert.False(t, opcao.Vencedora, "sem votos não há vencedora")
	}
}

func TestTallyPercentagesAndWinner(t *testing.T) {
	v := buildVotacao(3)
	a, b := v.Opcoes[0].ID, v.Opcoes[1].ID

	vote(v, 101, a)
	vote(v, 102, a)
	vote(v, 103, b)

	res := Tally(v)
	require.Equal(t, 3, res.TotalCedulas)

	assert.Equal(t, 2, res.Opcoes[0].Votos)
	assert.Equal(t, 67, res.Opcoes[0].Percentual) // round(2/3*100)
	assert.True(t, res.Opcoes[0].Vencedora)

	assert.Equal(t, 1, res.Opcoes[1].Votos)
	assert.Equal(t, 33, res.Opcoes[1].Percentual)
	assert.False(t, res.Opcoes[1].Vencedora)

	assert.Equal(t, 0, res.Opcoes[2].Votos)
	assert.Equal(t, 0, res.Opcoes[2].Percentual)
	assert.False(t, res.Opcoes[2].Vencedora)

	// arredondamento independente: a soma pode não fechar em 100
	soma := 0
	for _, o := range res.Opcoes {
		soma += o.Percentual
	}
	assert.Equal(t, 100, soma)
}

func TestTallyTiedWinners(t *testing.T) {
	v := buildVotacao(2)
	vote(v, 101, v.Opcoes[0].ID)
	vote(v, 102, v.Opcoes[1].ID)

	res := Tally(v)
	assert.True(t, res.Opcoes[0].Vencedora)
	assert.True(t, res.Opcoes[1].Vencedora)
	assert.Equal(t, 50, res.Opcoes[0].Percentual)
	assert.Equal(t, 50, res.Opcoes[1].Percentual)
}

func TestTallyMultipleChoiceCountsPerBallot(t *testing.T) {
	v := buildVotacao(2)
	v.MultiplaEscolha = true
	a, b := v.Opcoes[0].ID, v.Opcoes[1].ID

	vote(v, 101, a, b)
	vote(v, 102, a)

	res := Tally(v)
	// total é de cédulas, não de marcações
	require.Equal(t, 2, res.TotalCedulas)
	assert.Equal(t, 2, res.Opcoes[0].Votos)
	assert.Equal(t, 100, res.Opcoes[0].Percentual)
	assert.Equal(t, 1, res.Opcoes[1].Votos)
	assert.Equal(t, 50, res.Opcoes[1].Percentual)
}

func TestTallyRoundingDoesNotSumTo100(t *testing.T) {
	v := buildVotacao(3)
	vote(v, 1, v.Opcoes[0].ID)
	vote(v, 2, v.Opcoes[1].ID)
	vote(v, 3, v.Opcoes[2].ID)

	res := Tally(v)
	soma := 0
	for _, o := range res.Opcoes {
		assert.Equal(t, 33, o.Percentual)
		soma += o.Percentual
	}
	assert.Equal(t, 99, soma) // propriedade aceita, não defeito
}

func TestStatusLifecycle(t *testing.T) {
	inicio := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusFutura, Status(inicio.Add(-time.Minute), inicio, fim))
	assert.Equal(t, StatusAtiva, Status(inicio, inicio, fim))
	assert.Equal(t, StatusAtiva, Status(fim, inicio, fim))
	// fim é inclusivo até o último instante do dia
	assert.Equal(t, StatusAtiva, Status(time.Date(2026, 5, 20, 23, 59, 0, 0, time.UTC), inicio, fim))
	assert.Equal(t, StatusEncerrada, Status(time.Date(2026, 5, 21, 0, 0, 1, 0, time.UTC), inicio, fim))
}
