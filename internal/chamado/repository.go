package chamado

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Repository concentra o acesso a chamados e comentários.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const chamadoColumns = `id, titulo, descricao, setor, tipo, status, prioridade, fotos,
       autor_id, autor_nome, likes, resposta_admin, created_at`

func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Chamado, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO chamados (titulo, descricao, setor, tipo, prioridade, fotos, autor_id, autor_nome)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+chamadoColumns,
		in.Titulo, in.Descricao, in.Setor, in.Tipo, in.Prioridade, in.Fotos, in.AutorID, in.AutorNome)

	c, err := scanChamado(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir chamado")
	}
	return c, nil
}

// List retorna todos os chamados, mais recentes primeiro, com comentários.
func (r *Repository) List(ctx context.Context) ([]Chamado, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+chamadoColumns+`
          FROM chamados
         ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar chamados")
	}
	defer rows.Close()

	chamados := make([]Chamado, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		c, err := scanChamado(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler chamado")
		}
		index[c.ID] = len(chamados)
		chamados = append(chamados, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler chamados")
	}

	comentarios, err := r.listComentarios(ctx)
	if err != nil {
		return nil, err
	}
	for _, com := range comentarios {
		if i, ok := index[com.ChamadoID]; ok {
			chamados[i].Comentarios = append(chamados[i].Comentarios, com)
		}
	}
	return chamados, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Chamado, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+chamadoColumns+`
          FROM chamados
         WHERE id = $1`, id)

	c, err := scanChamado(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao buscar chamado")
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, chamado_id, autor_id, autor_nome, corpo, sistema, created_at
          FROM chamado_comentarios
         WHERE chamado_id = $1
         ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar comentários")
	}
	defer rows.Close()
	for rows.Next() {
		var com Comentario
		if err := rows.Scan(&com.ID, &com.ChamadoID, &com.AutorID, &com.AutorNome, &com.Corpo, &com.Sistema, &com.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler comentário")
		}
		c.Comentarios = append(c.Comentarios, com)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler comentários")
	}
	return c, nil
}

func (r *Repository) Update(ctx context.Context, in UpdateInput) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE chamados
           SET titulo         = COALESCE($2, titulo),
               descricao      = COALESCE($3, descricao),
               fotos          = COALESCE($4, fotos),
               resposta_admin = COALESCE($5, resposta_admin)
         WHERE id = $1`,
		in.ID, in.Titulo, in.Descricao, in.Fotos, in.RespostaAdmin)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao atualizar chamado")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus grava apenas o novo status. A justificativa da transição
// vive no comentário de sistema, não na resposta da gestão.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE chamados
           SET status = $2
         WHERE id = $1`, id, status)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao atualizar status")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike adiciona ou remove o usuário da lista de apoios em um único UPDATE.
func (r *Repository) ToggleLike(ctx context.Context, id uuid.UUID, userID string) ([]string, error) {
	var likes []string
	err := r.pool.QueryRow(ctx, `
        UPDATE chamados
           SET likes = CASE
                WHEN $2 = ANY(likes) THEN array_remove(likes, $2)
                ELSE array_append(likes, $2)
           END
         WHERE id = $1
        RETURNING likes`, id, userID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao registrar apoio")
	}
	return likes, nil
}

func (r *Repository) InsertComentario(ctx context.Context, in CommentInput) (*Comentario, error) {
	var com Comentario
	err := r.pool.QueryRow(ctx, `
        INSERT INTO chamado_comentarios (chamado_id, autor_id, autor_nome, corpo, sistema)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, chamado_id, autor_id, autor_nome, corpo, sistema, created_at`,
		in.ChamadoID, in.AutorID, in.AutorNome, in.Corpo, in.Sistema).
		Scan(&com.ID, &com.ChamadoID, &com.AutorID, &com.AutorNome, &com.Corpo, &com.Sistema, &com.CreatedAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir comentário")
	}
	return &com, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chamados WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir chamado")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) listComentarios(ctx context.Context) ([]Comentario, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, chamado_id, autor_id, autor_nome, corpo, sistema, created_at
          FROM chamado_comentarios
         ORDER BY created_at ASC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar comentários")
	}
	defer rows.Close()

	out := make([]Comentario, 0)
	for rows.Next() {
		var com Comentario
		if err := rows.Scan(&com.ID, &com.ChamadoID, &com.AutorID, &com.AutorNome, &com.Corpo, &com.Sistema, &com.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler comentário")
		}
		out = append(out, com)
	}
	return out, rows.Err()
}

func scanChamado(row pgx.Row) (*Chamado, error) {
	var c Chamado
	err := row.Scan(&c.ID, &c.Titulo, &c.Descricao, &c.Setor, &c.Tipo, &c.Status, &c.Prioridade,
		&c.Fotos, &c.AutorID, &c.AutorNome, &c.Likes, &c.RespostaAdmin, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.Comentarios == nil {
		c.Comentarios = make([]Comentario, 0)
	}
	return &c, nil
}
