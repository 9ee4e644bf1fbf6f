package morador

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const moradorColumns = "id, nome, username, cpf, casa, papel, email, senha_hash, created_at"

// Repository provê acesso à tabela de moradores.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert cadastra um morador. Violações de unicidade são traduzidas pelos
// índices de cpf, username e casa.
func (r *Repository) Insert(ctx context.Context, input CreateInput, email, papel, senhaHash string) (*Morador, error) {
	const query = `
        INSERT INTO moradores (nome, username, cpf, casa, papel, email, senha_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + moradorColumns + `
    `
	row := r.pool.QueryRow(ctx, query,
		strings.TrimSpace(input.Nome),
		strings.ToLower(strings.TrimSpace(input.Username)),
		input.CPF,
		input.Casa,
		papel,
		email,
		senhaHash,
	)

	m, err := scanMorador(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "cpf"):
				return nil, ErrCPFDuplicado
			case strings.Contains(pgErr.ConstraintName, "username"):
				return nil, ErrUsernameDuplicado
			case strings.Contains(pgErr.ConstraintName, "casa"):
				return nil, ErrCasaDuplicada
			}
			return nil, ErrUsernameDuplicado
		}
		return nil, err
	}
	return m, nil
}

// List devolve todos os moradores ordenados por nome.
func (r *Repository) List(ctx context.Context) ([]Morador, error) {
	const query = `
        SELECT ` + moradorColumns + `
        FROM moradores
        ORDER BY nome ASC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Morador
	for rows.Next() {
		m, err := scanMorador(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// Get busca morador por id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Morador, error) {
	const query = `SELECT ` + moradorColumns + ` FROM moradores WHERE id = $1`
	return scanMorador(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername busca morador pelo nome de usuário.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Morador, error) {
	const query = `SELECT ` + moradorColumns + ` FROM moradores WHERE username = $1`
	return scanMorador(r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(username))))
}

// Count conta moradores cadastrados.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM moradores`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdatePapel altera o papel do morador.
func (r *Repository) UpdatePapel(ctx context.Context, id uuid.UUID, papel string) (*Morador, error) {
	const query = `
        UPDATE moradores
        SET papel = $2
        WHERE id = $1
        RETURNING ` + moradorColumns + `
    `
	return scanMorador(r.pool.QueryRow(ctx, query, id, papel))
}

// Delete remove o perfil do morador.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM moradores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMorador(row pgx.Row) (*Morador, error) {
	var m Morador
	if err := row.Scan(&m.ID, &m.Nome, &m.Username, &m.CPF, &m.Casa, &m.Papel, &m.Email, &m.SenhaHash, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
