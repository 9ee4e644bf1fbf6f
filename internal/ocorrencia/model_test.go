package ocorrencia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditavel(t *testing.T) {
	resposta := "já encaminhado para a portaria"

	aberta := Ocorrencia{Status: StatusAberto}
	assert.True(t, aberta.Editavel(), "aberta e sem resposta segue editável")

	respondida := Ocorrencia{Status: StatusAberto, RespostaAdmin: &resposta}
	assert.False(t, respondida.Editavel(), "resposta da gestão fecha a janela")

	resolvida := Ocorrencia{Status: StatusResolvido}
	assert.False(t, resolvida.Editavel(), "resolvida nunca é editável")
}
