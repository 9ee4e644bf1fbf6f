package ocorrencia

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Repository concentra o acesso à tabela de ocorrências.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const ocorrenciaColumns = `id, autor_id, autor_nome, casa, telefone, assunto, descricao,
       fotos, status, resposta_admin, resolved_at, created_at`

func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Ocorrencia, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO ocorrencias (autor_id, autor_nome, casa, telefone, assunto, descricao, fotos)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+ocorrenciaColumns,
		in.AutorID, in.AutorNome, in.Casa, in.Telefone, in.Assunto, in.Descricao, in.Fotos)

	o, err := scanOcorrencia(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir ocorrência")
	}
	return o, nil
}

func (r *Repository) List(ctx context.Context) ([]Ocorrencia, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+ocorrenciaColumns+`
          FROM ocorrencias
         ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar ocorrências")
	}
	defer rows.Close()

	out := make([]Ocorrencia, 0)
	for rows.Next() {
		o, err := scanOcorrencia(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler ocorrência")
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Ocorrencia, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+ocorrenciaColumns+`
          FROM ocorrencias
         WHERE id = $1`, id)

	o, err := scanOcorrencia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao buscar ocorrência")
	}
	return o, nil
}

func (r *Repository) Update(ctx context.Context, in UpdateInput) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE ocorrencias
           SET assunto   = COALESCE($2, assunto),
               descricao = COALESCE($3, descricao),
               telefone  = COALESCE($4, telefone),
               fotos     = COALESCE($5, fotos)
         WHERE id = $1`,
		in.ID, in.Assunto, in.Descricao, in.Telefone, in.Fotos)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao atualizar ocorrência")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResposta grava a resposta da gestão, mantendo o status atual.
func (r *Repository) SetResposta(ctx context.Context, id uuid.UUID, resposta string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE ocorrencias SET resposta_admin = $2 WHERE id = $1`, id, resposta)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao responder ocorrência")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResolvido marca a ocorrência como resolvida e grava o momento.
func (r *Repository) SetResolvido(ctx context.Context, id uuid.UUID, quando time.Time) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE ocorrencias
           SET status = $2, resolved_at = $3
         WHERE id = $1`, id, StatusResolvido, quando)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao resolver ocorrência")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ocorrencias WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir ocorrência")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOcorrencia(row pgx.Row) (*Ocorrencia, error) {
	var o Ocorrencia
	err := row.Scan(&o.ID, &o.AutorID, &o.AutorNome, &o.Casa, &o.Telefone, &o.Assunto,
		&o.Descricao, &o.Fotos, &o.Status, &o.RespostaAdmin, &o.ResolvedAt, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
