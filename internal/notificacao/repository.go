package notificacao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Repository concentra o acesso à tabela de notificações.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const notificacaoColumns = `id, mensagem, destino, chamado_id, lida_por, created_at`

func (r *Repository) Insert(ctx context.Context, mensagem, destino string, chamadoID *uuid.UUID) (*Notificacao, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO notificacoes (mensagem, destino, chamado_id)
        VALUES ($1, $2, $3)
        RETURNING `+notificacaoColumns, mensagem, destino, chamadoID)

	n, err := scanNotificacao(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir notificação")
	}
	return n, nil
}

// ListAll retorna todas as notificações, mais recentes primeiro.
func (r *Repository) ListAll(ctx context.Context) ([]Notificacao, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+notificacaoColumns+`
          FROM notificacoes
         ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar notificações")
	}
	defer rows.Close()

	out := make([]Notificacao, 0)
	for rows.Next() {
		n, err := scanNotificacao(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler notificação")
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// ListFor retorna as notificações visíveis ao usuário, mais recentes primeiro.
func (r *Repository) ListFor(ctx context.Context, userID string) ([]Notificacao, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+notificacaoColumns+`
          FROM notificacoes
         WHERE destino = $1 OR destino = $2
         ORDER BY created_at DESC`, DestinoTodos, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar notificações")
	}
	defer rows.Close()

	out := make([]Notificacao, 0)
	for rows.Next() {
		n, err := scanNotificacao(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler notificação")
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// MarkAllRead acrescenta o usuário a lida_por de tudo que ele enxerga e ainda
// não leu, em um único UPDATE. Repetir a chamada não muda nada.
func (r *Repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE notificacoes
           SET lida_por = array_append(lida_por, $1)
         WHERE (destino = $2 OR destino = $1)
           AND NOT ($1 = ANY(lida_por))`, userID, DestinoTodos)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err, "falha ao marcar como lidas")
	}
	return tag.RowsAffected(), nil
}

// UnreadCount conta as notificações visíveis ao usuário que ele não leu.
func (r *Repository) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
        SELECT COUNT(*)
          FROM notificacoes
         WHERE (destino = $2 OR destino = $1)
           AND NOT ($1 = ANY(lida_por))`, userID, DestinoTodos).Scan(&count)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err, "falha ao contar não lidas")
	}
	return count, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notificacoes WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir notificação")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllFor apaga em um único comando as notificações dirigidas ao
// usuário e, quando autorizado, também os broadcasts compartilhados.
// Devolve quantas linhas saíram.
func (r *Repository) DeleteAllFor(ctx context.Context, userID string, incluirBroadcast bool) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
        DELETE FROM notificacoes
         WHERE destino = $1 OR ($3 AND destino = $2)`, userID, DestinoTodos, incluirBroadcast)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir notificações")
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Notificacao, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+notificacaoColumns+`
          FROM notificacoes
         WHERE id = $1`, id)

	n, err := scanNotificacao(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao buscar notificação")
	}
	return n, nil
}

func scanNotificacao(row pgx.Row) (*Notificacao, error) {
	var n Notificacao
	err := row.Scan(&n.ID, &n.Mensagem, &n.Destino, &n.ChamadoID, &n.LidaPor, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
