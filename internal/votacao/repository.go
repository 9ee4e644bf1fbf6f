package votacao

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provê acesso às tabelas de votações, opções e cédulas.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository cria instância do repositório.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool expõe o pool para transações do serviço.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// Create insere a votação e suas opções em uma transação do chamador.
func (r *Repository) CreateTx(ctx context.Context, tx pgx.Tx, input CreateInput) (*Votacao, error) {
	const insertVotacao = `
        INSERT INTO votacoes (titulo, descricao, inicio, fim, multipla_escolha, criado_por)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, titulo, descricao, inicio, fim, multipla_escolha, criado_por, created_at
    `
	var v Votacao
	err := tx.QueryRow(ctx, insertVotacao,
		strings.TrimSpace(input.Titulo),
		strings.TrimSpace(input.Descricao),
		input.Inicio,
		input.Fim,
		input.MultiplaEscolha,
		input.CriadoPor,
	).Scan(&v.ID, &v.Titulo, &v.Descricao, &v.Inicio, &v.Fim, &v.MultiplaEscolha, &v.CriadoPor, &v.CreatedAt)
	if err != nil {
		return nil, err
	}

	const insertOpcao = `
        INSERT INTO votacao_opcoes (votacao_id, texto, imagem_url, posicao)
        VALUES ($1, $2, $3, $4)
        RETURNING id, texto, imagem_url, posicao
    `
	for i, opcao := range input.Opcoes {
		var o Opcao
		err := tx.QueryRow(ctx, insertOpcao, v.ID, strings.TrimSpace(opcao.Texto), opcao.ImagemURL, i).
			Scan(&o.ID, &o.Texto, &o.ImagemURL, &o.Posicao)
		if err != nil {
			return nil, err
		}
		v.Opcoes = append(v.Opcoes, o)
	}

	v.Cedulas = []Cedula{}
	return &v, nil
}

// List devolve todas as votações com opções e cédulas carregadas.
func (r *Repository) List(ctx context.Context) ([]Votacao, error) {
	const query = `
        SELECT id, titulo, descricao, inicio, fim, multipla_escolha, criado_por, created_at
        FROM votacoes
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votacoes []Votacao
	for rows.Next() {
		var v Votacao
		if err := rows.Scan(&v.ID, &v.Titulo, &v.Descricao, &v.Inicio, &v.Fim, &v.MultiplaEscolha, &v.CriadoPor, &v.CreatedAt); err != nil {
			return nil, err
		}
		votacoes = append(votacoes, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	for i := range votacoes {
		if err := r.loadDetails(ctx, &votacoes[i]); err != nil {
			return nil, err
		}
	}
	return votacoes, nil
}

// Get busca uma votação completa.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Votacao, error) {
	const query = `
        SELECT id, titulo, descricao, inicio, fim, multipla_escolha, criado_por, created_at
        FROM votacoes
        WHERE id = $1
    `
	var v Votacao
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&v.ID, &v.Titulo, &v.Descricao, &v.Inicio, &v.Fim, &v.MultiplaEscolha, &v.CriadoPor, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := r.loadDetails(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetForVoteTx carrega a votação dentro da transação com a linha travada,
// serializando cédulas concorrentes da mesma votação.
func (r *Repository) GetForVoteTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Votacao, error) {
	const query = `
        SELECT id, titulo, descricao, inicio, fim, multipla_escolha, criado_por, created_at
        FROM votacoes
        WHERE id = $1
        FOR UPDATE
    `
	var v Votacao
	err := tx.QueryRow(ctx, query, id).
		Scan(&v.ID, &v.Titulo, &v.Descricao, &v.Inicio, &v.Fim, &v.MultiplaEscolha, &v.CriadoPor, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	const opcoes = `
        SELECT id, texto, imagem_url, posicao
        FROM votacao_opcoes
        WHERE votacao_id = $1
        ORDER BY posicao
    `
	rows, err := tx.Query(ctx, opcoes, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var o Opcao
		if err := rows.Scan(&o.ID, &o.Texto, &o.ImagemURL, &o.Posicao); err != nil {
			return nil, err
		}
		v.Opcoes = append(v.Opcoes, o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	const cedulas = `
        SELECT id, votacao_id, casa, morador_id, nome, opcoes, created_at
        FROM cedulas
        WHERE votacao_id = $1
        ORDER BY created_at
    `
	crows, err := tx.Query(ctx, cedulas, id)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var c Cedula
		if err := crows.Scan(&c.ID, &c.VotacaoID, &c.Casa, &c.MoradorID, &c.Nome, &c.Opcoes, &c.CreatedAt); err != nil {
			return nil, err
		}
		v.Cedulas = append(v.Cedulas, c)
	}
	if crows.Err() != nil {
		return nil, crows.Err()
	}

	return &v, nil
}

// InsertCedulaTx registra a cédula dentro da transação. O timestamp é do
// servidor de banco; o índice único (votacao_id, casa) é a última barreira
// contra voto duplicado.
func (r *Repository) InsertCedulaTx(ctx context.Context, tx pgx.Tx, input VoteInput) (*Cedula, error) {
	const query = `
        INSERT INTO cedulas (votacao_id, casa, morador_id, nome, opcoes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, votacao_id, casa, morador_id, nome, opcoes, created_at
    `
	var c Cedula
	err := tx.QueryRow(ctx, query, input.VotacaoID, input.Casa, input.MoradorID, strings.TrimSpace(input.Nome), input.Opcoes).
		Scan(&c.ID, &c.VotacaoID, &c.Casa, &c.MoradorID, &c.Nome, &c.Opcoes, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrVotoDuplicado
		}
		return nil, err
	}
	return &c, nil
}

// Delete remove a votação (opções e cédulas caem em cascata).
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM votacoes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) loadDetails(ctx context.Context, v *Votacao) error {
	const opcoes = `
        SELECT id, texto, imagem_url, posicao
        FROM votacao_opcoes
        WHERE votacao_id = $1
        ORDER BY posicao
    `
	rows, err := r.pool.Query(ctx, opcoes, v.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var o Opcao
		if err := rows.Scan(&o.ID, &o.Texto, &o.ImagemURL, &o.Posicao); err != nil {
			return err
		}
		v.Opcoes = append(v.Opcoes, o)
	}
	if rows.Err() != nil {
		return rows.Err()
	}

	const cedulas = `
        SELECT id, votacao_id, casa, morador_id, nome, opcoes, created_at
        FROM cedulas
        WHERE votacao_id = $1
        ORDER BY created_at
    `
	crows, err := r.pool.Query(ctx, cedulas, v.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		var c Cedula
		if err := crows.Scan(&c.ID, &c.VotacaoID, &c.Casa, &c.MoradorID, &c.Nome, &c.Opcoes, &c.CreatedAt); err != nil {
			return err
		}
		v.Cedulas = append(v.Cedulas, c)
	}
	return crows.Err()
}
