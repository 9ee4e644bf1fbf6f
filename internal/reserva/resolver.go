package reserva

import (
	"time"

	"github.com/tassiius1-pixel/condominio/internal/policy"
)

// Pedido descreve a intenção de reserva submetida à validação.
type Pedido struct {
	Dia   time.Time
	Area  string
	Casa  int
	Papel string
}

// Validar decide se o pedido pode ser aceito frente às reservas já existentes
// do mesmo dia. Função pura: recebe a lista corrente e a data de referência.
//
// Ordem das regras:
//  1. área já ocupada no dia;
//  2. exclusividade cruzada churrasqueira × salão para a mesma casa;
//  3. restrições de data (passado e antecedência), exceto papéis isentos.
func Validar(pedido Pedido, existentes []Reserva, hoje time.Time) error {
	area := NormalizeArea(pedido.Area)
	if !IsValidArea(area) {
		return ErrAreaInvalida
	}

	dia := startOfDay(pedido.Dia)
	ref := startOfDay(hoje)

	for _, r := range existentes {
		if !sameDay(r.Dia, dia) {
			continue
		}
		if NormalizeArea(r.Area) == area {
			return ErrAreaOcupada
		}
	}

	for _, r := range existentes {
		if !sameDay(r.Dia, dia) || r.Casa != pedido.Casa {
			continue
		}
		held := NormalizeArea(r.Area)
		if IsChurrasco(area) && held == AreaSalaoFestas {
			return ErrExclusividadeCruzada
		}
		if area == AreaSalaoFestas && IsChurrasco(held) {
			return ErrExclusividadeCruzada
		}
	}

	if policy.Allowed(pedido.Papel, policy.ActionReservationExempt) {
		return nil
	}

	days := daysBetween(ref, dia)
	if days < 0 {
		return ErrDataPassada
	}
	if IsChurrasco(area) && days > LeadTimeChurrasco {
		return ErrPrazoExcedido
	}
	if area == AreaSalaoFestas && days > LeadTimeSalao {
		return ErrPrazoExcedido
	}

	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween conta dias de calendário entre duas datas normalizadas.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
