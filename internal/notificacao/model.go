package notificacao

import (
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// DestinoTodos marca uma notificação visível para o condomínio inteiro.
const DestinoTodos = "all"

var ErrNotFound = apperr.New(apperr.CodeNotFound, "notificação não encontrada")

// Notificacao é uma entrada do sino de notificações. O destino é 'all' ou
// o id de um morador; lida_por acumula quem já viu.
type Notificacao struct {
	ID        uuid.UUID  `json:"id"`
	Mensagem  string     `json:"mensagem"`
	Destino   string     `json:"destino"`
	ChamadoID *uuid.UUID `json:"chamado_id,omitempty"`
	LidaPor   []string   `json:"lida_por"`
	CreatedAt time.Time  `json:"created_at"`
}

// LidaPara informa se o usuário já marcou esta notificação como lida.
func (n *Notificacao) LidaPara(userID string) bool {
	for _, id := range n.LidaPor {
		if id == userID {
			return true
		}
	}
	return false
}
