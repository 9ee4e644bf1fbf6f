package reserva

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservaColumns = "id, morador_id, nome, casa, dia, area, created_at"

// Repository provê acesso à tabela de reservas.
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

// List devolve todas as reservas ordenadas por dia.
func (r *Repository) List(ctx context.Context) ([]Reserva, error) {
	const query = `
        SELECT ` + reservaColumns + `
        FROM reservas
        ORDER BY dia ASC, created_at ASC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservas(rows)
}

// Get busca uma reserva específica.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Reserva, error) {
	const query = `
        SELECT ` + reservaColumns + `
        FROM reservas
        WHERE id = $1
    `
	return scanReserva(r.pool.QueryRow(ctx, query, id))
}

// ListByDiaForUpdate lê as reservas do dia dentro da transação, com lock,
// para que a validação e a escrita sejam atômicas. O advisory lock por dia
// serializa também transações concorrentes em dias ainda sem nenhuma linha,
// onde o FOR UPDATE não teria o que travar.
func (r *Repository) ListByDiaForUpdate(ctx context.Context, tx pgx.Tx, dia time.Time) ([]Reserva, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, diaLockKey(dia)); err != nil {
		return nil, err
	}

	const query = `
        SELECT ` + reservaColumns + `
        FROM reservas
        WHERE dia = $1
        FOR UPDATE
    `
	rows, err := tx.Query(ctx, query, dia)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservas(rows)
}

// InsertTx insere a reserva dentro da transação.
func (r *Repository) InsertTx(ctx context.Context, tx pgx.Tx, input CreateInput) (*Reserva, error) {
	const query = `
        INSERT INTO reservas (morador_id, nome, casa, dia, area)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + reservaColumns + `
    `
	row := tx.QueryRow(ctx, query,
		input.MoradorID,
		input.Nome,
		input.Casa,
		startOfDay(input.Dia),
		NormalizeArea(input.Area),
	)

	res, err := scanReserva(row)
	if err != nil {
		if isUniqueViolation(err) {
			// índice único (dia, area) como última barreira contra corrida
			return nil, ErrAreaOcupada
		}
		return nil, err
	}
	return res, nil
}

// Delete remove (cancela) uma reserva.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reservas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectReservas(rows pgx.Rows) ([]Reserva, error) {
	var out []Reserva
	for rows.Next() {
		res, err := scanReserva(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func scanReserva(row pgx.Row) (*Reserva, error) {
	var r Reserva
	if err := row.Scan(&r.ID, &r.MoradorID, &r.Nome, &r.Casa, &r.Dia, &r.Area, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// diaLockKey normaliza o dia para a chave do advisory lock: dois pedidos no
// mesmo dia calendário precisam disputar o mesmo lock, independente da hora.
func diaLockKey(dia time.Time) string {
	return "reservas:" + startOfDay(dia).Format("2006-01-02")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
