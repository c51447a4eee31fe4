package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// TicketRepository encapsulates service-ticket persistence, including the
// mechanic and part join tables. Join mutations are explicit single-row
// statements, atomic on their own.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.ServiceTicket) error
	Update(ctx context.Context, ticket *domain.ServiceTicket) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceTicket, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.ServiceTicket, error)
	Count(ctx context.Context) (int64, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]domain.CustomerTicket, error)

	AssignMechanic(ctx context.Context, ticketID, mechanicID int64) (bool, error)
	RemoveMechanic(ctx context.Context, ticketID, mechanicID int64) (bool, error)

	GetPartLine(ctx context.Context, ticketID, partID int64) (*domain.TicketPart, error)
	UpsertPart(ctx context.Context, ticketID, partID int64, quantity int) error
	RemovePart(ctx context.Context, ticketID, partID int64) (bool, error)
	ListParts(ctx context.Context, ticketID int64) ([]domain.TicketPart, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, vehicle_id, date_in, date_out, description, status, total_cost, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        INSERT INTO service_tickets (vehicle_id, description, status, total_cost)
        VALUES ($1, $2, $3, $4)
        RETURNING id, date_in, updated_at`

	return r.pool.QueryRow(ctx, query,
		ticket.VehicleID,
		ticket.Description,
		ticket.Status,
		ticket.TotalCost,
	).Scan(&ticket.ID, &ticket.DateIn, &ticket.UpdatedAt)
}

// Update never touches date_in; it is fixed at creation.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        UPDATE service_tickets SET vehicle_id=$1, date_out=$2, description=$3, status=$4,
            total_cost=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		ticket.VehicleID,
		ticket.DateOut,
		ticket.Description,
		ticket.Status,
		ticket.TotalCost,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceTicket, error) {
	var ticket domain.ServiceTicket
	if err := r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM service_tickets WHERE id=$1`, id).Scan(
		&ticket.ID,
		&ticket.VehicleID,
		&ticket.DateIn,
		&ticket.DateOut,
		&ticket.Description,
		&ticket.Status,
		&ticket.TotalCost,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) List(ctx context.Context, limit, offset int) ([]domain.ServiceTicket, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+ticketColumns+` FROM service_tickets ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceTicket
	for rows.Next() {
		var ticket domain.ServiceTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.VehicleID,
			&ticket.DateIn,
			&ticket.DateOut,
			&ticket.Description,
			&ticket.Status,
			&ticket.TotalCost,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM service_tickets`).Scan(&count)
	return count, err
}

// ListForCustomer returns every ticket on any vehicle owned by the
// customer, annotated with the vehicle label and assigned mechanic names.
func (r *ticketRepository) ListForCustomer(ctx context.Context, customerID int64) ([]domain.CustomerTicket, error) {
	const query = `
        SELECT t.id, t.vehicle_id, t.date_in, t.date_out, t.description, t.status, t.total_cost, t.updated_at,
               v.year, v.make, v.model,
               COALESCE(array_agg(m.name ORDER BY m.id) FILTER (WHERE m.id IS NOT NULL), '{}')
        FROM service_tickets t
        JOIN vehicles v ON v.id = t.vehicle_id
        LEFT JOIN ticket_mechanics tm ON tm.ticket_id = t.id
        LEFT JOIN mechanics m ON m.id = tm.mechanic_id
        WHERE v.customer_id = $1
        GROUP BY t.id, v.year, v.make, v.model
        ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomerTicket
	for rows.Next() {
		var (
			item         domain.CustomerTicket
			year         int
			vehicleMake  string
			vehicleModel string
		)
		if err := rows.Scan(
			&item.Ticket.ID,
			&item.Ticket.VehicleID,
			&item.Ticket.DateIn,
			&item.Ticket.DateOut,
			&item.Ticket.Description,
			&item.Ticket.Status,
			&item.Ticket.TotalCost,
			&item.Ticket.UpdatedAt,
			&year,
			&vehicleMake,
			&vehicleModel,
			&item.MechanicNames,
		); err != nil {
			return nil, err
		}
		label := domain.Vehicle{Year: year, Make: vehicleMake, Model: vehicleModel}
		item.VehicleLabel = label.Label()
		result = append(result, item)
	}
	return result, rows.Err()
}

// AssignMechanic inserts the association row. Returns false when the pair
// already exists.
func (r *ticketRepository) AssignMechanic(ctx context.Context, ticketID, mechanicID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx,
		`INSERT INTO ticket_mechanics (ticket_id, mechanic_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		ticketID, mechanicID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// RemoveMechanic deletes the association row. Returns false when the pair
// was not present.
func (r *ticketRepository) RemoveMechanic(ctx context.Context, ticketID, mechanicID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM ticket_mechanics WHERE ticket_id=$1 AND mechanic_id=$2`,
		ticketID, mechanicID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) GetPartLine(ctx context.Context, ticketID, partID int64) (*domain.TicketPart, error) {
	const query = `
        SELECT tp.ticket_id, tp.part_id, i.name, i.price, tp.quantity
        FROM ticket_parts tp
        JOIN inventory i ON i.id = tp.part_id
        WHERE tp.ticket_id=$1 AND tp.part_id=$2`

	var line domain.TicketPart
	if err := r.pool.QueryRow(ctx, query, ticketID, partID).Scan(
		&line.TicketID,
		&line.PartID,
		&line.Name,
		&line.Price,
		&line.Quantity,
	); err != nil {
		return nil, err
	}
	return &line, nil
}

// UpsertPart creates the association row or accumulates quantity onto the
// existing one in a single atomic statement.
func (r *ticketRepository) UpsertPart(ctx context.Context, ticketID, partID int64, quantity int) error {
	const query = `
        INSERT INTO ticket_parts (ticket_id, part_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (ticket_id, part_id)
        DO UPDATE SET quantity = ticket_parts.quantity + EXCLUDED.quantity`

	_, err := r.pool.Exec(ctx, query, ticketID, partID, quantity)
	return err
}

// RemovePart drops the association row entirely, regardless of quantity.
func (r *ticketRepository) RemovePart(ctx context.Context, ticketID, partID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM ticket_parts WHERE ticket_id=$1 AND part_id=$2`, ticketID, partID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ticketRepository) ListParts(ctx context.Context, ticketID int64) ([]domain.TicketPart, error) {
	const query = `
        SELECT tp.ticket_id, tp.part_id, i.name, i.price, tp.quantity
        FROM ticket_parts tp
        JOIN inventory i ON i.id = tp.part_id
        WHERE tp.ticket_id=$1
        ORDER BY tp.part_id`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketPart
	for rows.Next() {
		var line domain.TicketPart
		if err := rows.Scan(
			&line.TicketID,
			&line.PartID,
			&line.Name,
			&line.Price,
			&line.Quantity,
		); err != nil {
			return nil, err
		}
		result = append(result, line)
	}
	return result, rows.Err()
}
