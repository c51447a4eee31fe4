package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// VehicleRepository defines persistence access for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*domain.Vehicle, error)
	GetByLicensePlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.Vehicle, error)
	Count(ctx context.Context) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Vehicle, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository returns a Postgres-backed implementation.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, customer_id, make, model, year, vin, license_plate, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (customer_id, make, model, year, vin, license_plate)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		vehicle.CustomerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.VIN,
		vehicle.LicensePlate,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles SET customer_id=$1, make=$2, model=$3, year=$4, vin=$5, license_plate=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		vehicle.CustomerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.VIN,
		vehicle.LicensePlate,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return r.fetchSingle(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id)
}

func (r *vehicleRepository) GetByVIN(ctx context.Context, vin string) (*domain.Vehicle, error) {
	return r.fetchSingle(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE vin=$1`, vin)
}

func (r *vehicleRepository) GetByLicensePlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return r.fetchSingle(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE license_plate=$1`, plate)
}

func (r *vehicleRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&vehicle.ID,
		&vehicle.CustomerID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.VIN,
		&vehicle.LicensePlate,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Delete removes the vehicle; its service tickets go with it via
// ON DELETE CASCADE.
func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, limit, offset int) ([]domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *vehicleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count)
	return count, err
}

func (r *vehicleRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE customer_id=$1 ORDER BY id LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *vehicleRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE customer_id=$1`, customerID).Scan(&count)
	return count, err
}

func scanVehicles(rows pgx.Rows) ([]domain.Vehicle, error) {
	var result []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.CustomerID,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.VIN,
			&vehicle.LicensePlate,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, vehicle)
	}
	return result, rows.Err()
}
