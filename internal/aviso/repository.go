package aviso

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Repository concentra o acesso à tabela de avisos.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const avisoColumns = `id, titulo, conteudo, autor_id, autor_nome, inicio, fim,
       fotos, likes, dislikes, created_at`

func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Aviso, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO avisos (titulo, conteudo, autor_id, autor_nome, inicio, fim, fotos)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+avisoColumns,
		in.Titulo, in.Conteudo, in.AutorID, in.AutorNome, in.Inicio, in.Fim, in.Fotos)

	a, err := scanAviso(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir aviso")
	}
	return a, nil
}

func (r *Repository) List(ctx context.Context) ([]Aviso, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+avisoColumns+`
          FROM avisos
         ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar avisos")
	}
	defer rows.Close()

	out := make([]Aviso, 0)
	for rows.Next() {
		a, err := scanAviso(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler aviso")
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Aviso, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+avisoColumns+`
          FROM avisos
         WHERE id = $1`, id)

	a, err := scanAviso(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao buscar aviso")
	}
	return a, nil
}

func (r *Repository) Update(ctx context.Context, in UpdateInput) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE avisos
           SET titulo   = COALESCE($2, titulo),
               conteudo = COALESCE($3, conteudo),
               inicio   = COALESCE($4, inicio),
               fim      = COALESCE($5, fim),
               fotos    = COALESCE($6, fotos)
         WHERE id = $1`,
		in.ID, in.Titulo, in.Conteudo, in.Inicio, in.Fim, in.Fotos)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao atualizar aviso")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleReacao alterna like/dislike do usuário em um único UPDATE: remove o
// usuário das duas listas e reinsere na escolhida apenas se ainda não estava
// nela, mantendo as reações mutuamente exclusivas sem corrida.
func (r *Repository) ToggleReacao(ctx context.Context, id uuid.UUID, userID, reacao string) (*Aviso, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE avisos
           SET likes = CASE
                WHEN $3 = 'like' AND NOT ($2 = ANY(likes))
                     THEN array_append(array_remove(likes, $2), $2)
                ELSE array_remove(likes, $2)
           END,
               dislikes = CASE
                WHEN $3 = 'dislike' AND NOT ($2 = ANY(dislikes))
                     THEN array_append(array_remove(dislikes, $2), $2)
                ELSE array_remove(dislikes, $2)
           END
         WHERE id = $1
        RETURNING `+avisoColumns, id, userID, reacao)

	a, err := scanAviso(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao registrar reação")
	}
	return a, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM avisos WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir aviso")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAviso(row pgx.Row) (*Aviso, error) {
	var a Aviso
	err := row.Scan(&a.ID, &a.Titulo, &a.Conteudo, &a.AutorID, &a.AutorNome, &a.Inicio,
		&a.Fim, &a.Fotos, &a.Likes, &a.Dislikes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
