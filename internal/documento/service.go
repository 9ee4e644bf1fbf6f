package documento

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

// Service reúne regras de negócio para documentos do condomínio.
type Service struct {
	repo    *Repository
	changes changePublisher
}

func NewService(repo *Repository, changes changePublisher) *Service {
	return &Service{repo: repo, changes: changes}
}

func (s *Service) List(ctx context.Context) ([]Documento, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, papel string, in CreateInput) (*Documento, error) {
	if !policy.Allowed(papel, policy.ActionManageDocuments) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode publicar documentos")
	}
	in.Titulo = strings.TrimSpace(in.Titulo)
	if in.Titulo == "" {
		return nil, apperr.New(apperr.CodeValidation, "título obrigatório")
	}
	if in.ArquivoURL == "" || in.ArquivoNome == "" {
		return nil, apperr.New(apperr.CodeValidation, "arquivo obrigatório")
	}

	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionDocumentos)
	return created, nil
}

// TogglePin fixa ou desafixa o documento no topo da listagem.
func (s *Service) TogglePin(ctx context.Context, papel string, id uuid.UUID) (*Documento, error) {
	if !policy.Allowed(papel, policy.ActionManageDocuments) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode fixar documentos")
	}
	d, err := s.repo.TogglePin(ctx, id)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionDocumentos)
	return d, nil
}

func (s *Service) Delete(ctx context.Context, papel string, id uuid.UUID) error {
	if !policy.Allowed(papel, policy.ActionManageDocuments) {
		return apperr.New(apperr.CodeForbidden, "apenas a gestão pode excluir documentos")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionDocumentos)
	return nil
}
