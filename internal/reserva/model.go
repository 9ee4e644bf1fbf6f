package reserva

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Áreas reserváveis do condomínio.
const (
	AreaChurrasco1  = "churrasco1"
	AreaChurrasco2  = "churrasco2"
	AreaSalaoFestas = "salao_festas"
)

// Prazos máximos de antecedência para papéis sem isenção.
const (
	LeadTimeChurrasco = 14
	LeadTimeSalao     = 180
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "reserva não encontrada")

	// ErrAreaInvalida indica área fora do conjunto reservável.
	ErrAreaInvalida = apperr.New(apperr.CodeValidation, "área inválida")
	// ErrAreaOcupada indica que a área já está reservada no dia.
	ErrAreaOcupada = apperr.New(apperr.CodeConflict, "área já reservada neste dia").WithReason("AreaTaken")
	// ErrExclusividadeCruzada indica casa tentando acumular churrasqueira e salão no mesmo dia.
	ErrExclusividadeCruzada = apperr.New(apperr.CodePolicy, "a casa já possui reserva de outra categoria neste dia").WithReason("CrossExclusivity")
	// ErrDataPassada indica reserva em data anterior a hoje.
	ErrDataPassada = apperr.New(apperr.CodePolicy, "não é possível reservar datas passadas").WithReason("PastDate")
	// ErrPrazoExcedido indica reserva além da antecedência máxima da área.
	ErrPrazoExcedido = apperr.New(apperr.CodePolicy, "antecedência máxima excedida para a área").WithReason("LeadTimeExceeded")
)

var validAreas = map[string]struct{}{
	AreaChurrasco1:  {},
	AreaChurrasco2:  {},
	AreaSalaoFestas: {},
}

// Reserva representa a ocupação de uma área por uma casa em um dia.
type Reserva struct {
	ID        uuid.UUID `json:"id"`
	MoradorID uuid.UUID `json:"morador_id"`
	Nome      string    `json:"nome"`
	Casa      int       `json:"casa"`
	Dia       time.Time `json:"dia"`
	Area      string    `json:"area"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput encapsula os campos para criação de reserva. CasaDestino
// permite aos papéis isentos reservar em nome de outra casa.
type CreateInput struct {
	MoradorID    uuid.UUID
	Nome         string
	Casa         int
	CasaDestino  *int
	Dia          time.Time
	Area         string
	Papel        string
}

// NormalizeArea padroniza o identificador da área.
func NormalizeArea(area string) string {
	return strings.ToLower(strings.TrimSpace(area))
}

// IsValidArea indica se a área é reservável.
func IsValidArea(area string) bool {
	_, ok := validAreas[NormalizeArea(area)]
	return ok
}

// IsChurrasco indica se a área pertence à categoria churrasqueira.
func IsChurrasco(area string) bool {
	return strings.HasPrefix(NormalizeArea(area), "churrasco")
}
