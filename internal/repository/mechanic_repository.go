package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// MechanicRepository defines persistence access for mechanics.
type MechanicRepository interface {
	Create(ctx context.Context, mechanic *domain.Mechanic) error
	Update(ctx context.Context, mechanic *domain.Mechanic) error
	GetByID(ctx context.Context, id int64) (*domain.Mechanic, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Mechanic, error)
	Count(ctx context.Context) (int64, error)
	ListByTicketCount(ctx context.Context) ([]domain.MechanicPerformance, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Mechanic, error)
}

type mechanicRepository struct {
	pool *pgxpool.Pool
}

// NewMechanicRepository returns a Postgres-backed implementation.
func NewMechanicRepository(pool *pgxpool.Pool) MechanicRepository {
	return &mechanicRepository{pool: pool}
}

const mechanicColumns = `id, name, email, address, phone, salary, created_at, updated_at`

func (r *mechanicRepository) Create(ctx context.Context, mechanic *domain.Mechanic) error {
	const query = `
        INSERT INTO mechanics (name, email, address, phone, salary)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		mechanic.Name,
		mechanic.Email,
		mechanic.Address,
		mechanic.Phone,
		mechanic.Salary,
	).Scan(&mechanic.ID, &mechanic.CreatedAt, &mechanic.UpdatedAt)
}

func (r *mechanicRepository) Update(ctx context.Context, mechanic *domain.Mechanic) error {
	const query = `
        UPDATE mechanics SET name=$1, email=$2, address=$3, phone=$4, salary=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		mechanic.Name,
		mechanic.Email,
		mechanic.Address,
		mechanic.Phone,
		mechanic.Salary,
		mechanic.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mechanicRepository) GetByID(ctx context.Context, id int64) (*domain.Mechanic, error) {
	var mechanic domain.Mechanic
	if err := r.pool.QueryRow(ctx,
		`SELECT `+mechanicColumns+` FROM mechanics WHERE id=$1`, id).Scan(
		&mechanic.ID,
		&mechanic.Name,
		&mechanic.Email,
		&mechanic.Address,
		&mechanic.Phone,
		&mechanic.Salary,
		&mechanic.CreatedAt,
		&mechanic.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &mechanic, nil
}

// Delete removes the mechanic. Association rows pointing at them are
// dropped by the join-table cascade; tickets themselves are untouched.
func (r *mechanicRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM mechanics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mechanicRepository) List(ctx context.Context, limit, offset int) ([]domain.Mechanic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+mechanicColumns+` FROM mechanics ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMechanics(rows)
}

func (r *mechanicRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mechanics`).Scan(&count)
	return count, err
}

// ListByTicketCount returns every mechanic with the count of tickets they
// are linked to, most tickets first. Ties break on id so repeated calls
// stay stable.
func (r *mechanicRepository) ListByTicketCount(ctx context.Context) ([]domain.MechanicPerformance, error) {
	const query = `
        SELECT m.id, m.name, m.email, m.address, m.phone, m.salary, m.created_at, m.updated_at,
               COUNT(tm.ticket_id) AS ticket_count
        FROM mechanics m
        LEFT JOIN ticket_mechanics tm ON tm.mechanic_id = m.id
        GROUP BY m.id
        ORDER BY ticket_count DESC, m.id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MechanicPerformance
	for rows.Next() {
		var perf domain.MechanicPerformance
		if err := rows.Scan(
			&perf.ID,
			&perf.Name,
			&perf.Email,
			&perf.Address,
			&perf.Phone,
			&perf.Salary,
			&perf.CreatedAt,
			&perf.UpdatedAt,
			&perf.TicketCount,
		); err != nil {
			return nil, err
		}
		result = append(result, perf)
	}
	return result, rows.Err()
}

func (r *mechanicRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Mechanic, error) {
	const query = `
        SELECT m.id, m.name, m.email, m.address, m.phone, m.salary, m.created_at, m.updated_at
        FROM mechanics m
        JOIN ticket_mechanics tm ON tm.mechanic_id = m.id
        WHERE tm.ticket_id = $1
        ORDER BY m.id`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMechanics(rows)
}

func scanMechanics(rows pgx.Rows) ([]domain.Mechanic, error) {
	var result []domain.Mechanic
	for rows.Next() {
		var mechanic domain.Mechanic
		if err := rows.Scan(
			&mechanic.ID,
			&mechanic.Name,
			&mechanic.Email,
			&mechanic.Address,
			&mechanic.Phone,
			&mechanic.Salary,
			&mechanic.CreatedAt,
			&mechanic.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, mechanic)
	}
	return result, rows.Err()
}
