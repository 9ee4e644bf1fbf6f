package reserva

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

func intPtr(v int) *int { return &v }

func TestResolveCasaPadraoDoCadastro(t *testing.T) {
	casa, err := resolveCasa(CreateInput{Casa: 101, Papel: "MORADOR"})
	assert.NoError(t, err)
	assert.Equal(t, 101, casa)
}

func TestResolveCasaEmNomeDeOutra(t *testing.T) {
	// ADMIN e síndico reservam para qualquer casa, mesmo sem casa própria
	for _, papel := range []string{"ADMIN", "SINDICO"} {
		casa, err := resolveCasa(CreateInput{Casa: 0, CasaDestino: intPtr(204), Papel: papel})
		assert.NoError(t, err, papel)
		assert.Equal(t, 204, casa, papel)
	}
}

func TestResolveCasaDestinoNegadoParaMorador(t *testing.T) {
	for _, papel := range []string{"MORADOR", "GESTAO", "SUBSINDICO"} {
		_, err := resolveCasa(CreateInput{Casa: 101, CasaDestino: intPtr(204), Papel: papel})
		assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err), papel)
	}
}

func TestResolveCasaInvalida(t *testing.T) {
	// ADMIN sem casa própria e sem destino não tem o que reservar
	_, err := resolveCasa(CreateInput{Casa: 0, Papel: "ADMIN"})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = resolveCasa(CreateInput{Casa: 0, CasaDestino: intPtr(0), Papel: "ADMIN"})
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestDiaLockKeyNormalizaHorario(t *testing.T) {
	manha := time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
	noite := time.Date(2026, 5, 20, 23, 45, 0, 0, time.UTC)
	outro := time.Date(2026, 5, 21, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, diaLockKey(manha), diaLockKey(noite))
	assert.NotEqual(t, diaLockKey(manha), diaLockKey(outro))
}
