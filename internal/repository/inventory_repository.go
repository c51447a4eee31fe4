package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// InventoryRepository defines persistence access for inventory parts.
type InventoryRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	Update(ctx context.Context, part *domain.Part) error
	GetByID(ctx context.Context, id int64) (*domain.Part, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Part, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]domain.Part, error)
	CountSearch(ctx context.Context, query string) (int64, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository returns a Postgres-backed implementation.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Create(ctx context.Context, part *domain.Part) error {
	const query = `
        INSERT INTO inventory (name, price)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query, part.Name, part.Price).
		Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)
}

func (r *inventoryRepository) Update(ctx context.Context, part *domain.Part) error {
	const query = `UPDATE inventory SET name=$1, price=$2, updated_at=NOW() WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, part.Name, part.Price, part.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.Part, error) {
	var part domain.Part
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, price, created_at, updated_at FROM inventory WHERE id=$1`, id).Scan(
		&part.ID,
		&part.Name,
		&part.Price,
		&part.CreatedAt,
		&part.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &part, nil
}

// Delete removes the part. Ticket association rows referencing it drop via
// the join-table cascade; tickets themselves are untouched.
func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context, limit, offset int) ([]domain.Part, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, created_at, updated_at FROM inventory ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

func (r *inventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count)
	return count, err
}

// Search matches part names case-insensitively on a substring.
func (r *inventoryRepository) Search(ctx context.Context, query string, limit, offset int) ([]domain.Part, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, created_at, updated_at FROM inventory
         WHERE name ILIKE '%' || $1 || '%' ORDER BY id LIMIT $2 OFFSET $3`,
		query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParts(rows)
}

func (r *inventoryRepository) CountSearch(ctx context.Context, query string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory WHERE name ILIKE '%' || $1 || '%'`, query).Scan(&count)
	return count, err
}

func scanParts(rows pgx.Rows) ([]domain.Part, error) {
	var result []domain.Part
	for rows.Next() {
		var part domain.Part
		if err := rows.Scan(
			&part.ID,
			&part.Name,
			&part.Price,
			&part.CreatedAt,
			&part.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, part)
	}
	return result, rows.Err()
}
