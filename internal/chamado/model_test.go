package chamado

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusPendente, StatusEmAnalise, StatusEmAndamento,
		StatusAprovada, StatusRecusada, StatusConcluido, StatusEmVotacao,
	} {
		assert.True(t, IsValidStatus(status), status)
	}

	assert.True(t, IsValidStatus("pendente"), "normaliza maiúsculas")
	assert.True(t, IsValidStatus("  em_analise  "), "normaliza espaços")

	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("CANCELADO"))
	assert.False(t, IsValidStatus("EM ANDAMENTO"))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, "EM_VOTACAO", NormalizeStatus(" em_votacao "))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Em análise", statusLabel(StatusEmAnalise))
	assert.Equal(t, "Concluído", statusLabel(StatusConcluido))
	// status desconhecido volta como veio
	assert.Equal(t, "XYZ", statusLabel("XYZ"))
}
