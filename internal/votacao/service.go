package votacao

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

// Service reúne regras de negócio para votações e o registro de cédulas.
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

// List lista votações completas.
func (s *Service) List(ctx context.Context) ([]Votacao, error) {
	return s.repo.List(ctx)
}

// Get busca uma votação.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Votacao, error) {
	return s.repo.Get(ctx, id)
}

// Create abre uma nova votação. Restrito à gestão.
func (s *Service) Create(ctx context.Context, papel string, input CreateInput) (*Votacao, error) {
	if !policy.Allowed(papel, policy.ActionManageVotings) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode criar votações")
	}

	input.Titulo = strings.TrimSpace(input.Titulo)
	if input.Titulo == "" {
		return nil, apperr.New(apperr.CodeValidation, "título obrigatório")
	}
	if len(input.Opcoes) < 2 {
		return nil, apperr.New(apperr.CodeValidation, "pelo menos duas opções")
	}
	for _, opcao := range input.Opcoes {
		if strings.TrimSpace(opcao.Texto) == "" {
			return nil, apperr.New(apperr.CodeValidation, "texto da opção obrigatório")
		}
	}
	if input.Inicio.IsZero() || input.Fim.IsZero() || input.Fim.Before(input.Inicio) {
		return nil, apperr.New(apperr.CodeValidation, "período inválido")
	}

	var created *Votacao
	err := db.WithTx(ctx, s.repo.Pool(), func(ctx context.Context, tx pgx.Tx) error {
		var err error
		created, err = s.repo.CreateTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionVotacoes)
	s.notify.Broadcast(ctx, fmt.Sprintf("Nova votação aberta: %s", created.Titulo), nil)
	return created, nil
}

// CastVote registra uma cédula. A verificação de duplicidade roda com a
// votação travada na transação; a cédula é imutável após o commit.
func (s *Service) CastVote(ctx context.Context, input VoteInput) (*Cedula, error) {
	if input.Casa <= 0 {
		return nil, apperr.New(apperr.CodeValidation, "casa obrigatória")
	}
	if len(input.Opcoes) == 0 {
		return nil, ErrEscolhaInvalida
	}

	var cedula *Cedula
	err := db.WithTx(ctx, s.repo.Pool(), func(ctx context.Context, tx pgx.Tx) error {
		votacao, err := s.repo.GetForVoteTx(ctx, tx, input.VotacaoID)
		if err != nil {
			return err
		}

		if err := ValidarCedula(votacao, input, s.now()); err != nil {
			return err
		}

		cedula, err = s.repo.InsertCedulaTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionVotacoes)
	return cedula, nil
}

// Results apura a votação corrente.
func (s *Service) Results(ctx context.Context, id uuid.UUID) (*Resultado, error) {
	votacao, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resultado := Tally(votacao)
	return &resultado, nil
}

// Delete remove uma votação. Restrito à gestão.
func (s *Service) Delete(ctx context.Context, papel string, id uuid.UUID) error {
	if !policy.Allowed(papel, policy.ActionManageVotings) {
		return apperr.New(apperr.CodeForbidden, "apenas a gestão pode remover votações")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionVotacoes)
	return nil
}
