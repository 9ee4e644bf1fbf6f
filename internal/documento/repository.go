package documento

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tassiius1-pixel/condominio/internal/apperr"
)

// Repository concentra o acesso à tabela de documentos.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const documentoColumns = `id, titulo, descricao, categoria, arquivo_url, arquivo_nome,
       arquivo_tipo, arquivo_tamanho, enviado_por, fixado, created_at`

func (r *Repository) Insert(ctx context.Context, in CreateInput) (*Documento, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO documentos (titulo, descricao, categoria, arquivo_url, arquivo_nome,
                                arquivo_tipo, arquivo_tamanho, enviado_por)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+documentoColumns,
		in.Titulo, in.Descricao, in.Categoria, in.ArquivoURL, in.ArquivoNome,
		in.ArquivoTipo, in.ArquivoTamanho, in.EnviadoPor)

	d, err := scanDocumento(row)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao inserir documento")
	}
	return d, nil
}

// List retorna os documentos com os fixados no topo, mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Documento, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+documentoColumns+`
          FROM documentos
         ORDER BY fixado DESC, created_at DESC`)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao listar documentos")
	}
	defer rows.Close()

	out := make([]Documento, 0)
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao ler documento")
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Documento, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+documentoColumns+`
          FROM documentos
         WHERE id = $1`, id)

	d, err := scanDocumento(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao buscar documento")
	}
	return d, nil
}

// TogglePin inverte o fixado em um único UPDATE.
func (r *Repository) TogglePin(ctx context.Context, id uuid.UUID) (*Documento, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE documentos
           SET fixado = NOT fixado
         WHERE id = $1
        RETURNING `+documentoColumns, id)

	d, err := scanDocumento(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err, "falha ao fixar documento")
	}
	return d, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documentos WHERE id = $1`, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "falha ao excluir documento")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocumento(row pgx.Row) (*Documento, error) {
	var d Documento
	err := row.Scan(&d.ID, &d.Titulo, &d.Descricao, &d.Categoria, &d.ArquivoURL, &d.ArquivoNome,
		&d.ArquivoTipo, &d.ArquivoTamanho, &d.EnviadoPor, &d.Fixado, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
