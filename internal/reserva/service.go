package reserva

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/db"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

type notifier interface {
	Broadcast(ctx context.Context, mensagem string, chamadoID *uuid.UUID)
}

// Service reúne regras de negócio para reservas de áreas comuns.
type Service struct {
	repo    *Repository
	changes changePublisher
	notify  notifier
	now     func() time.Time
}

// NewService cria uma nova instância do serviço.
func NewService(repo *Repository, changes changePublisher, notify notifier) *Service {
	return &Service{repo: repo, changes: changes, notify: notify, now: time.Now}
}

// List lista todas as reservas.
func (s *Service) List(ctx context.Context) ([]Reserva, error) {
	return s.repo.List(ctx)
}

// Create valida e grava uma reserva. A validação roda dentro da transação,
// sobre as reservas do dia lidas com lock, fechando a corrida entre dois
// clientes disputando o mesmo horário.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Reserva, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	if input.Nome == "" {
		return nil, apperr.New(apperr.CodeValidation, "nome obrigatório")
	}
	casa, err := resolveCasa(input)
	if err != nil {
		return nil, err
	}
	input.Casa = casa
	if !IsValidArea(input.Area) {
		return nil, ErrAreaInvalida
	}
	if input.Dia.IsZero() {
		return nil, apperr.New(apperr.CodeValidation, "dia obrigatório")
	}

	var created *Reserva
	err = db.WithTx(ctx, s.repo.Pool(), func(ctx context.Context, tx pgx.Tx) error {
		dia := startOfDay(input.Dia)
		existentes, err := s.repo.ListByDiaForUpdate(ctx, tx, dia)
		if err != nil {
			return err
		}

		pedido := Pedido{Dia: dia, Area: input.Area, Casa: input.Casa, Papel: input.Papel}
		if err := Validar(pedido, existentes, s.now()); err != nil {
			return err
		}

		created, err = s.repo.InsertTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionReservas)
	s.notify.Broadcast(ctx, fmt.Sprintf("Nova reserva: %s em %s por casa %d",
		areaLabel(created.Area), created.Dia.Format("02/01/2006"), created.Casa), nil)

	return created, nil
}

// Cancel remove a reserva. Permitido ao dono ou a papéis de gestão.
func (s *Service) Cancel(ctx context.Context, id, actorID uuid.UUID, papel string) error {
	res, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if res.MoradorID != actorID && !policy.Allowed(papel, policy.ActionCancelAnyReservation) {
		return apperr.New(apperr.CodeForbidden, "apenas o dono ou a gestão podem cancelar")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.changes.Publish(ctx, realtime.CollectionReservas)
	return nil
}

// resolveCasa decide para qual casa a reserva vale. ADMIN e síndico podem
// reservar em nome de qualquer casa; os demais ficam presos à própria.
func resolveCasa(input CreateInput) (int, error) {
	if input.CasaDestino != nil {
		if !policy.Allowed(input.Papel, policy.ActionReservationExempt) {
			return 0, apperr.New(apperr.CodeForbidden, "apenas a administração reserva em nome de outra casa")
		}
		if *input.CasaDestino <= 0 {
			return 0, apperr.New(apperr.CodeValidation, "casa inválida")
		}
		return *input.CasaDestino, nil
	}
	if input.Casa <= 0 {
		return 0, apperr.New(apperr.CodeValidation, "casa obrigatória")
	}
	return input.Casa, nil
}

func areaLabel(area string) string {
	switch NormalizeArea(area) {
	case AreaChurrasco1:
		return "Churrasqueira 1"
	case AreaChurrasco2:
		return "Churrasqueira 2"
	case AreaSalaoFestas:
		return "Salão de Festas"
	}
	return area
}
