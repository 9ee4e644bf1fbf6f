package ocorrencia

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

// Service reúne regras de negócio para ocorrências.
type Service struct {
	repo    *Repository
	changes changePublisher
	now     func() time.Time
}

func NewService(repo *Repository, changes changePublisher) *Service {
	return &Service{repo: repo, changes: changes, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Ocorrencia, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Ocorrencia, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Ocorrencia, error) {
	in.Assunto = strings.TrimSpace(in.Assunto)
	in.Descricao = strings.TrimSpace(in.Descricao)
	if in.Assunto == "" {
		return nil, apperr.New(apperr.CodeValidation, "assunto obrigatório")
	}
	if in.Descricao == "" {
		return nil, apperr.New(apperr.CodeValidation, "descrição obrigatória")
	}
	if in.Fotos == nil {
		in.Fotos = []string{}
	}

	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionOcorrencias)
	return created, nil
}

// Update permite ao autor revisar a ocorrência enquanto a gestão não
// interveio. Depois da primeira resposta ou da resolução, a janela fecha.
func (s *Service) Update(ctx context.Context, actorID uuid.UUID, in UpdateInput) (*Ocorrencia, error) {
	atual, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if atual.AutorID != actorID {
		return nil, apperr.New(apperr.CodeForbidden, "apenas o autor pode editar a ocorrência")
	}
	if !atual.Editavel() {
		return nil, ErrEdicaoBloqueada
	}

	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionOcorrencias)
	return s.repo.Get(ctx, in.ID)
}

// Respond grava a resposta da gestão. A partir daqui o autor não edita mais.
func (s *Service) Respond(ctx context.Context, papel string, id uuid.UUID, resposta string) (*Ocorrencia, error) {
	if !policy.Allowed(papel, policy.ActionRespondOccurrence) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode responder")
	}
	resposta = strings.TrimSpace(resposta)
	if resposta == "" {
		return nil, apperr.New(apperr.CodeValidation, "resposta vazia")
	}

	if err := s.repo.SetResposta(ctx, id, resposta); err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionOcorrencias)
	return s.repo.Get(ctx, id)
}

// Resolve encerra a ocorrência registrando o momento da resolução.
func (s *Service) Resolve(ctx context.Context, papel string, id uuid.UUID) (*Ocorrencia, error) {
	if !policy.Allowed(papel, policy.ActionRespondOccurrence) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode resolver")
	}

	if err := s.repo.SetResolvido(ctx, id, s.now()); err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionOcorrencias)
	return s.repo.Get(ctx, id)
}

// Delete remove a ocorrência. Restrito ao ADMIN.
func (s *Service) Delete(ctx context.Context, papel string, id uuid.UUID) error {
	if !policy.Allowed(papel, policy.ActionDeleteOccurrence) {
		return apperr.New(apperr.CodeForbidden, "apenas o administrador pode excluir")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionOcorrencias)
	return nil
}
