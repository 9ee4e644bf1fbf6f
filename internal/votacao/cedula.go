package votacao

import (
	"time"

	"github.com/google/uuid"
)

// ValidarCedula decide se o voto pode ser aceito frente ao estado corrente
// da votação. Função pura, chamada com a votação travada na transação.
//
// Ordem das regras:
//  1. votação fora do período ativo;
//  2. cédula vazia, opção repetida ou desconhecida, múltipla escolha indevida;
//  3. uma cédula por casa.
func ValidarCedula(v *Votacao, input VoteInput, now time.Time) error {
	if v.StatusOf(now) != StatusAtiva {
		return ErrForaDoPeriodo
	}

	if len(input.Opcoes) == 0 {
		return ErrEscolhaInvalida
	}
	if !v.MultiplaEscolha && len(input.Opcoes) > 1 {
		return ErrEscolhaInvalida
	}

	known := make(map[uuid.UUID]struct{}, len(v.Opcoes))
	for _, opcao := range v.Opcoes {
		known[opcao.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Opcoes))
	for _, id := range input.Opcoes {
		if _, ok := known[id]; !ok {
			return ErrEscolhaInvalida
		}
		if _, dup := seen[id]; dup {
			return ErrEscolhaInvalida
		}
		seen[id] = struct{}{}
	}

	for _, existente := range v.Cedulas {
		if existente.Casa == input.Casa {
			return ErrVotoDuplicado
		}
	}

	return nil
}
