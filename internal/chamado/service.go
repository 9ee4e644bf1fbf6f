package chamado

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

type store interface {
	List(ctx context.Context) ([]Chamado, error)
	Get(ctx context.Context, id uuid.UUID) (*Chamado, error)
	Insert(ctx context.Context, in CreateInput) (*Chamado, error)
	Update(ctx context.Context, in UpdateInput) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ToggleLike(ctx context.Context, id uuid.UUID, userID string) ([]string, error)
	InsertComentario(ctx context.Context, in CommentInput) (*Comentario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service reúne regras de negócio para chamados.
type Service struct {
	repo    store
	changes changePublisher
	notify  notifier
}

func NewService(repo store, changes changePublisher, notify notifier) *Service {
	return &Service{repo: repo, changes: changes, notify: notify}
}

func (s *Service) List(ctx context.Context) ([]Chamado, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Chamado, error) {
	return s.repo.Get(ctx, id)
}

// Create abre um chamado e avisa todo o condomínio.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Chamado, error) {
	in.Titulo = strings.TrimSpace(in.Titulo)
	in.Descricao = strings.TrimSpace(in.Descricao)
	if in.Titulo == "" {
		return nil, apperr.New(apperr.CodeValidation, "título obrigatório")
	}
	if in.Descricao == "" {
		return nil, apperr.New(apperr.CodeValidation, "descrição obrigatória")
	}
	if in.Prioridade == "" {
		in.Prioridade = "normal"
	}
	if in.Fotos == nil {
		in.Fotos = []string{}
	}

	created, err := s.repo.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	s.changes.Publish(ctx, realtime.CollectionChamados)
	s.notify.Broadcast(ctx, fmt.Sprintf("Novo chamado: %s", created.Titulo), &created.ID)

	return created, nil
}

// Update revisa título, descrição ou fotos. Restrito à gestão.
func (s *Service) Update(ctx context.Context, papel string, in UpdateInput) (*Chamado, error) {
	if !policy.IsManagement(papel) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode editar chamados")
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionChamados)
	return s.repo.Get(ctx, in.ID)
}

// ChangeStatus move o chamado de status. Quando uma justificativa é
// informada, um comentário de sistema registra a transição.
func (s *Service) ChangeStatus(ctx context.Context, papel string, id uuid.UUID, status string, justificativa *string) (*Chamado, error) {
	if !policy.Allowed(papel, policy.ActionChangeRequestStatus) {
		return nil, apperr.New(apperr.CodeForbidden, "apenas a gestão pode mudar o status")
	}
	status = NormalizeStatus(status)
	if !IsValidStatus(status) {
		return nil, ErrStatusInvalido
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if justificativa != nil && strings.TrimSpace(*justificativa) != "" {
		_, err := s.repo.InsertComentario(ctx, CommentInput{
			ChamadoID: id,
			AutorNome: "Sistema",
			Corpo:     fmt.Sprintf("Status alterado para %s. Justificativa: %s", statusLabel(status), strings.TrimSpace(*justificativa)),
			Sistema:   true,
		})
		if err != nil {
			return nil, err
		}
	}

	s.changes.Publish(ctx, realtime.CollectionChamados)
	return s.repo.Get(ctx, id)
}

// ToggleLike alterna o apoio do usuário em um único UPDATE atômico.
func (s *Service) ToggleLike(ctx context.Context, id, userID uuid.UUID) ([]string, error) {
	likes, err := s.repo.ToggleLike(ctx, id, userID.String())
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionChamados)
	return likes, nil
}

// AddComment acrescenta um comentário do morador ou da gestão.
func (s *Service) AddComment(ctx context.Context, in CommentInput) (*Comentario, error) {
	in.Corpo = strings.TrimSpace(in.Corpo)
	if in.Corpo == "" {
		return nil, apperr.New(apperr.CodeValidation, "comentário vazio")
	}
	in.Sistema = false

	com, err := s.repo.InsertComentario(ctx, in)
	if err != nil {
		return nil, err
	}
	s.changes.Publish(ctx, realtime.CollectionChamados)
	return com, nil
}

// Delete remove o chamado e seus comentários. Restrito à gestão.
func (s *Service) Delete(ctx context.Context, papel string, id uuid.UUID) error {
	if !policy.Allowed(papel, policy.ActionDeleteRequest) {
		return apperr.New(apperr.CodeForbidden, "apenas a gestão pode excluir chamados")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionChamados)
	return nil
}

func statusLabel(status string) string {
	switch status {
	case StatusPendente:
		return "Pendente"
	case StatusEmAnalise:
		return "Em análise"
	case StatusEmAndamento:
		return "Em andamento"
	case StatusAprovada:
		return "Aprovada"
	case StatusRecusada:
		return "Recusada"
	case StatusConcluido:
		return "Concluído"
	case StatusEmVotacao:
		return "Em votação"
	}
	return status
}
