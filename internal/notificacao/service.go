package notificacao

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
	"github.com/tassiius1-pixel/condominio/internal/policy"
	"github.com/tassiius1-pixel/condominio/internal/push"
	"github.com/tassiius1-pixel/condominio/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, coll realtime.Collection)
}

type store interface {
	Insert(ctx context.Context, mensagem, destino string, chamadoID *uuid.UUID) (*Notificacao, error)
	ListFor(ctx context.Context, userID string) ([]Notificacao, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllFor(ctx context.Context, userID string, incluirBroadcast bool) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*Notificacao, error)
}

// Service reúne regras de negócio do sino de notificações e o disparo de push.
type Service struct {
	repo    store
	changes changePublisher
	sender  push.Sender
	log     zerolog.Logger
}

func NewService(repo store, changes changePublisher, sender push.Sender, log zerolog.Logger) *Service {
	if sender == nil {
		sender = push.NoopSender{}
	}
	return &Service{repo: repo, changes: changes, sender: sender, log: log}
}

func (s *Service) ListFor(ctx context.Context, userID uuid.UUID) ([]Notificacao, error) {
	return s.repo.ListFor(ctx, userID.String())
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID.String())
}

// Broadcast grava uma notificação para todos e dispara o push em melhor
// esforço: falha no gateway vira warning no log, nunca erro da mutação.
func (s *Service) Broadcast(ctx context.Context, mensagem string, chamadoID *uuid.UUID) {
	mensagem = strings.TrimSpace(mensagem)
	if mensagem == "" {
		return
	}

	if _, err := s.repo.Insert(ctx, mensagem, DestinoTodos, chamadoID); err != nil {
		s.log.Warn().Err(err).Msg("broadcast: falha ao gravar notificação")
		return
	}

	s.changes.Publish(ctx, realtime.CollectionNotificacoes)

	data := map[string]string{}
	if chamadoID != nil {
		data["chamado_id"] = chamadoID.String()
	}
	if err := s.sender.Send(ctx, DestinoTodos, "Condomínio", mensagem, data); err != nil {
		s.log.Warn().Err(err).Msg("broadcast: falha no push")
	}
}

// NotifyUser grava uma notificação dirigida a um morador específico.
func (s *Service) NotifyUser(ctx context.Context, userID uuid.UUID, mensagem string, chamadoID *uuid.UUID) {
	mensagem = strings.TrimSpace(mensagem)
	if mensagem == "" {
		return
	}

	if _, err := s.repo.Insert(ctx, mensagem, userID.String(), chamadoID); err != nil {
		s.log.Warn().Err(err).Msg("notify: falha ao gravar notificação")
		return
	}

	s.changes.Publish(ctx, realtime.CollectionNotificacoes)

	if err := s.sender.Send(ctx, userID.String(), "Condomínio", mensagem, nil); err != nil {
		s.log.Warn().Err(err).Msg("notify: falha no push")
	}
}

// MarkAllRead marca tudo que o usuário enxerga como lido. Idempotente.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID.String())
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.changes.Publish(ctx, realtime.CollectionNotificacoes)
	}
	return updated, nil
}

// Delete remove uma notificação. O morador só apaga as dirigidas a ele;
// a gestão apaga qualquer uma.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, papel string, id uuid.UUID) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.Destino != userID.String() && !policy.Allowed(papel, policy.ActionDeleteNotification) {
		return apperr.New(apperr.CodeForbidden, "notificação não pertence ao usuário")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changes.Publish(ctx, realtime.CollectionNotificacoes)
	return nil
}

// DeleteAll apaga as notificações do usuário e devolve a contagem para a
// interface emitir um único resumo. Broadcasts são linhas compartilhadas:
// só saem quando o papel pode apagá-las, a mesma regra do Delete unitário.
func (s *Service) DeleteAll(ctx context.Context, userID uuid.UUID, papel string) (int64, error) {
	incluirBroadcast := policy.Allowed(papel, policy.ActionDeleteNotification)
	deleted, err := s.repo.DeleteAllFor(ctx, userID.String(), incluirBroadcast)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.changes.Publish(ctx, realtime.CollectionNotificacoes)
	}
	return deleted, nil
}
