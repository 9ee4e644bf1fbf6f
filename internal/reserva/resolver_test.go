package reserva

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hoje = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func dia(offset int) time.Time {
	return hoje.AddDate(0, 0, offset)
}

func reservaDe(casa int, area string, d time.Time) Reserva {
	return Reserva{Casa: casa, Area: area, Dia: d}
}

func TestValidarAreaOcupada(t *testing.T) {
	existentes := []Reserva{reservaDe(101, AreaChurrasco1, dia(5))}

	err := Validar(Pedido{Dia: dia(5), Area: AreaChurrasco1, Casa: 202, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrAreaOcupada)

	// mesma casa também não pode duplicar a área
	err = Validar(Pedido{Dia: dia(5), Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrAreaOcupada)

	// outra área no mesmo dia segue livre
	err = Validar(Pedido{Dia: dia(5), Area: AreaChurrasco2, Casa: 202, Papel: "MORADOR"}, existentes, hoje)
	assert.NoError(t, err)
}

func TestValidarExclusividadeCruzada(t *testing.T) {
	existentes := []Reserva{reservaDe(101, AreaChurrasco1, dia(5))}

	err := Validar(Pedido{Dia: dia(5), Area: AreaSalaoFestas, Casa: 101, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrExclusividadeCruzada)

	// sentido inverso: salão primeiro, churrasqueira depois
	existentes = []Reserva{reservaDe(101, AreaSalaoFestas, dia(5))}
	err = Validar(Pedido{Dia: dia(5), Area: AreaChurrasco2, Casa: 101, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrExclusividadeCruzada)

	// outra casa não é afetada
	err = Validar(Pedido{Dia: dia(5), Area: AreaChurrasco2, Casa: 202, Papel: "MORADOR"}, existentes, hoje)
	assert.NoError(t, err)

	// exclusividade vale mesmo para papéis isentos de prazos
	existentes = []Reserva{reservaDe(101, AreaChurrasco1, dia(5))}
	err = Validar(Pedido{Dia: dia(5), Area: AreaSalaoFestas, Casa: 101, Papel: "ADMIN"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrExclusividadeCruzada)
}

func TestValidarDataPassada(t *testing.T) {
	err := Validar(Pedido{Dia: dia(-1), Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.ErrorIs(t, err, ErrDataPassada)

	// hoje é permitido
	err = Validar(Pedido{Dia: dia(0), Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.NoError(t, err)
}

func TestValidarPrazoChurrasqueira(t *testing.T) {
	// 14 dias: limite inclusivo
	err := Validar(Pedido{Dia: dia(14), Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.NoError(t, err)

	// 15 dias: excede
	err = Validar(Pedido{Dia: dia(15), Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.ErrorIs(t, err, ErrPrazoExcedido)
}

func TestValidarPrazoSalao(t *testing.T) {
	err := Validar(Pedido{Dia: dia(180), Area: AreaSalaoFestas, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.NoError(t, err)

	err = Validar(Pedido{Dia: dia(181), Area: AreaSalaoFestas, Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.ErrorIs(t, err, ErrPrazoExcedido)
}

func TestValidarIsencaoDePrazos(t *testing.T) {
	for _, papel := range []string{"ADMIN", "SINDICO"} {
		assert.NoError(t, Validar(Pedido{Dia: dia(-10), Area: AreaChurrasco1, Casa: 101, Papel: papel}, nil, hoje), papel)
		assert.NoError(t, Validar(Pedido{Dia: dia(300), Area: AreaSalaoFestas, Casa: 101, Papel: papel}, nil, hoje), papel)
	}

	// SUBSINDICO e GESTAO não são isentos
	for _, papel := range []string{"SUBSINDICO", "GESTAO", "MORADOR"} {
		err := Validar(Pedido{Dia: dia(15), Area: AreaChurrasco1, Casa: 101, Papel: papel}, nil, hoje)
		assert.ErrorIs(t, err, ErrPrazoExcedido, papel)
	}
}

func TestValidarAreaInvalida(t *testing.T) {
	err := Validar(Pedido{Dia: dia(1), Area: "piscina", Casa: 101, Papel: "MORADOR"}, nil, hoje)
	assert.ErrorIs(t, err, ErrAreaInvalida)
}

// Cenário fim a fim: casa 101 reserva churrasqueira, depois tenta o salão no
// mesmo dia; casa 202 tenta a mesma churrasqueira.
func TestCenarioReservasEncadeadas(t *testing.T) {
	alvo := dia(10)
	var existentes []Reserva

	pedido := Pedido{Dia: alvo, Area: AreaChurrasco1, Casa: 101, Papel: "MORADOR"}
	require.NoError(t, Validar(pedido, existentes, hoje))
	existentes = append(existentes, reservaDe(101, AreaChurrasco1, alvo))

	err := Validar(Pedido{Dia: alvo, Area: AreaSalaoFestas, Casa: 101, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrExclusividadeCruzada)

	err = Validar(Pedido{Dia: alvo, Area: AreaChurrasco1, Casa: 202, Papel: "MORADOR"}, existentes, hoje)
	assert.ErrorIs(t, err, ErrAreaOcupada)

	// propriedade: nunca duas reservas aceitas para (dia, área)
	count := 0
	for _, r := range existentes {
		if sameDay(r.Dia, alvo) && r.Area == AreaChurrasco1 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
