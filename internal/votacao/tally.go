package votacao

import (
	"math"

	"github.com/google/uuid"
)

// ResultadoOpcao é a contagem derivada de uma alternativa.
type ResultadoOpcao struct {
	Opcao      Opcao `json:"opcao"`
	Votos      int   `json:"votos"`
	Percentual int   `json:"percentual"`
	Vencedora  bool  `json:"vencedora"`
}

// Resultado consolida a apuração de uma votação.
type Resultado struct {
	TotalCedulas int              `json:"total_cedulas"`
	Opcoes       []ResultadoOpcao `json:"opcoes"`
}

// Tally apura a votação. O percentual de cada opção é round(votos/total*100)
// sobre o total de cédulas; por causa do arredondamento independente, a soma
// dos percentuais pode não fechar em 100. Vencedoras são todas as opções
// empatadas no máximo, desde que o máximo seja maior que zero.
func Tally(v *Votacao) Resultado {
	counts := make(map[uuid.UUID]int, len(v.Opcoes))
	for _, cedula := range v.Cedulas {
		for _, opcaoID := range cedula.Opcoes {
			counts[opcaoID]++
		}
	}

	total := len(v.Cedulas)

	max := 0
	for _, opcao := range v.Opcoes {
		if counts[opcao.ID] > max {
			max = counts[opcao.ID]
		}
	}

	out := Resultado{TotalCedulas: total, Opcoes: make([]ResultadoOpcao, 0, len(v.Opcoes))}
	for _, opcao := range v.Opcoes {
		votos := counts[opcao.ID]
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(votos) / float64(total) * 100))
		}
		out.Opcoes = append(out.Opcoes, ResultadoOpcao{
			Opcao:      opcao,
			Votos:      votos,
			Percentual: pct,
			Vencedora:  max > 0 && votos == max,
		})
	}
	return out
}
