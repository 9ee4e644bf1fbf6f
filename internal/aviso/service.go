package aviso

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

type notifier interface {
	Broadcast(ctx context.Context, mensagem string, chamadoID *uuid.UUID)
}

// Service reúne regras de negócio para avisos.
type Service struct {
	repo    *Repository
	changes changePublisher
	notify  notifier
}

func NewService(repo *Repository, changes changePublisher, notify notifier) *Service {
	return &Service{repo: repo, changes: changes, notify: notify}
}

func (s *Service) List(ctx context.Context) ([]Aviso, error) {
	return s.repo.List(ctx)
}

// Create publica um aviso e notifica o condomínio. Restrito à gestão.
func (s *Service) Create(ctx context.Context, papel string, in CreateInput) (*Aviso, error) {
	if !policy.Allowed(papel, policy.ActionManageNotices) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode publicar avisos")
	}
	in.Titulo = strings.TrimSpace(in.Titulo)
	in.Conteudo = strings.TrimSpace(in.Conteudo)
	if in.Titulo == "" {
		return nil, apperr.New(apperr.CodeValidation, "título obrigatório")
	}
	if in.Conteudo == "" {
		return nil, apperr.New(apperr.CodeValidation, "conteúdo obrigatório")
	}
	if in.Fotos == nil {
		in.Fotos = []string{}
	}

	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionAvisos)
	s.notify.Broadcast(ctx, fmt.Sprintf("Novo aviso: %s", created.Titulo), nil)

	return created, nil
}

func (s *Service) Update(ctx context.Context, papel string, in UpdateInput) (*Aviso, error) {
	if !policy.Allowed(papel, policy.ActionManageNotices) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode editar avisos")
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionAvisos)
	return s.repo.Get(ctx, in.ID)
}

// ToggleReacao alterna a reação do usuário. Reagir de novo com a mesma
// reação remove; reagir com a oposta troca.
func (s *Service) ToggleReacao(ctx context.Context, id, userID uuid.UUID, reacao string) (*Aviso, error) {
	reacao = strings.ToLower(strings.TrimSpace(reacao))
	if reacao != ReacaoLike && reacao != ReacaoDislike {
		return nil, apperr.New(apperr.CodeValidation, "reação inválida")
	}

	a, err := s.repo.ToggleReacao(ctx, id, userID.String(), reacao)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionAvisos)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, papel string, id uuid.UUID) error {
	if !policy.Allowed(papel, policy.ActionManageNotices) {
		return apperr.New(apperr.CodeForbidden, "apenas a gestão pode excluir avisos")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionAvisos)
	return nil
}
