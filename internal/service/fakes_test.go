package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

// In-memory repository fakes. They mirror the Postgres-backed behavior the
// services rely on: pgx.ErrNoRows for missing rows, id-ordered listings,
// and join-table semantics for assignments and part lines.

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func pageSlice[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeCustomerRepo struct {
	seq   int64
	items map[int64]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: map[int64]*domain.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.seq++
	customer.ID = r.seq
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	cp := *customer
	r.items[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	if _, ok := r.items[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	customer.UpdatedAt = time.Now()
	cp := *customer
	r.items[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *customer
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, id := range sortedIDs(r.items) {
		if r.items[id].Email == email {
			cp := *r.items[id]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, limit, offset int) ([]domain.Customer, error) {
	var result []domain.Customer
	for _, id := range sortedIDs(r.items) {
		result = append(result, *r.items[id])
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type fakeVehicleRepo struct {
	seq   int64
	items map[int64]*domain.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{items: map[int64]*domain.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) error {
	r.seq++
	vehicle.ID = r.seq
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	cp := *vehicle
	r.items[vehicle.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) error {
	if _, ok := r.items[vehicle.ID]; !ok {
		return pgx.ErrNoRows
	}
	vehicle.UpdatedAt = time.Now()
	cp := *vehicle
	r.items[vehicle.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *vehicle
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByVIN(_ context.Context, vin string) (*domain.Vehicle, error) {
	for _, id := range sortedIDs(r.items) {
		if r.items[id].VIN == vin {
			cp := *r.items[id]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVehicleRepo) GetByLicensePlate(_ context.Context, plate string) (*domain.Vehicle, error) {
	for _, id := range sortedIDs(r.items) {
		lp := r.items[id].LicensePlate
		if lp != nil && *lp == plate {
			cp := *r.items[id]
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeVehicleRepo) List(_ context.Context, limit, offset int) ([]domain.Vehicle, error) {
	var result []domain.Vehicle
	for _, id := range sortedIDs(r.items) {
		result = append(result, *r.items[id])
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeVehicleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeVehicleRepo) ListByCustomer(_ context.Context, customerID int64, limit, offset int) ([]domain.Vehicle, error) {
	var result []domain.Vehicle
	for _, id := range sortedIDs(r.items) {
		if r.items[id].CustomerID == customerID {
			result = append(result, *r.items[id])
		}
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeVehicleRepo) CountByCustomer(_ context.Context, customerID int64) (int64, error) {
	var count int64
	for _, vehicle := range r.items {
		if vehicle.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

type fakeInventoryRepo struct {
	seq   int64
	items map[int64]*domain.Part
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[int64]*domain.Part{}}
}

func (r *fakeInventoryRepo) Create(_ context.Context, part *domain.Part) error {
	r.seq++
	part.ID = r.seq
	part.CreatedAt = time.Now()
	part.UpdatedAt = part.CreatedAt
	cp := *part
	r.items[part.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, part *domain.Part) error {
	if _, ok := r.items[part.ID]; !ok {
		return pgx.ErrNoRows
	}
	part.UpdatedAt = time.Now()
	cp := *part
	r.items[part.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id int64) (*domain.Part, error) {
	part, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *part
	return &cp, nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) List(_ context.Context, limit, offset int) ([]domain.Part, error) {
	var result []domain.Part
	for _, id := range sortedIDs(r.items) {
		result = append(result, *r.items[id])
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeInventoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeInventoryRepo) Search(_ context.Context, query string, limit, offset int) ([]domain.Part, error) {
	var result []domain.Part
	for _, id := range sortedIDs(r.items) {
		if strings.Contains(strings.ToLower(r.items[id].Name), strings.ToLower(query)) {
			result = append(result, *r.items[id])
		}
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeInventoryRepo) CountSearch(_ context.Context, query string) (int64, error) {
	var count int64
	for _, part := range r.items {
		if strings.Contains(strings.ToLower(part.Name), strings.ToLower(query)) {
			count++
		}
	}
	return count, nil
}

type fakeMechanicRepo struct {
	seq     int64
	items   map[int64]*domain.Mechanic
	tickets *fakeTicketRepo
}

func newFakeMechanicRepo() *fakeMechanicRepo {
	return &fakeMechanicRepo{items: map[int64]*domain.Mechanic{}}
}

func (r *fakeMechanicRepo) Create(_ context.Context, mechanic *domain.Mechanic) error {
	r.seq++
	mechanic.ID = r.seq
	mechanic.CreatedAt = time.Now()
	mechanic.UpdatedAt = mechanic.CreatedAt
	cp := *mechanic
	r.items[mechanic.ID] = &cp
	return nil
}

func (r *fakeMechanicRepo) Update(_ context.Context, mechanic *domain.Mechanic) error {
	if _, ok := r.items[mechanic.ID]; !ok {
		return pgx.ErrNoRows
	}
	mechanic.UpdatedAt = time.Now()
	cp := *mechanic
	r.items[mechanic.ID] = &cp
	return nil
}

func (r *fakeMechanicRepo) GetByID(_ context.Context, id int64) (*domain.Mechanic, error) {
	mechanic, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *mechanic
	return &cp, nil
}

func (r *fakeMechanicRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeMechanicRepo) List(_ context.Context, limit, offset int) ([]domain.Mechanic, error) {
	var result []domain.Mechanic
	for _, id := range sortedIDs(r.items) {
		result = append(result, *r.items[id])
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeMechanicRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeMechanicRepo) ListByTicketCount(_ context.Context) ([]domain.MechanicPerformance, error) {
	counts := map[int64]int64{}
	if r.tickets != nil {
		for _, assigned := range r.tickets.assigned {
			for mechanicID := range assigned {
				counts[mechanicID]++
			}
		}
	}
	var result []domain.MechanicPerformance
	for _, id := range sortedIDs(r.items) {
		result = append(result, domain.MechanicPerformance{
			Mechanic:    *r.items[id],
			TicketCount: counts[id],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TicketCount != result[j].TicketCount {
			return result[i].TicketCount > result[j].TicketCount
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *fakeMechanicRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.Mechanic, error) {
	var result []domain.Mechanic
	if r.tickets == nil {
		return result, nil
	}
	assigned := r.tickets.assigned[ticketID]
	for _, id := range sortedIDs(r.items) {
		if assigned[id] {
			result = append(result, *r.items[id])
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	seq       int64
	items     map[int64]*domain.ServiceTicket
	assigned  map[int64]map[int64]bool
	partLines map[int64]map[int64]int
	vehicles  *fakeVehicleRepo
	mechanics *fakeMechanicRepo
	inventory *fakeInventoryRepo
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		items:     map[int64]*domain.ServiceTicket{},
		assigned:  map[int64]map[int64]bool{},
		partLines: map[int64]map[int64]int{},
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.ServiceTicket) error {
	r.seq++
	ticket.ID = r.seq
	ticket.DateIn = time.Now()
	ticket.UpdatedAt = ticket.DateIn
	cp := *ticket
	r.items[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.ServiceTicket) error {
	if _, ok := r.items[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	cp := *ticket
	r.items[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.ServiceTicket, error) {
	ticket, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *ticket
	return &cp, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	delete(r.assigned, id)
	delete(r.partLines, id)
	return nil
}

func (r *fakeTicketRepo) List(_ context.Context, limit, offset int) ([]domain.ServiceTicket, error) {
	var result []domain.ServiceTicket
	for _, id := range sortedIDs(r.items) {
		result = append(result, *r.items[id])
	}
	return pageSlice(result, limit, offset), nil
}

func (r *fakeTicketRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeTicketRepo) ListForCustomer(_ context.Context, customerID int64) ([]domain.CustomerTicket, error) {
	var result []domain.CustomerTicket
	for _, id := range sortedIDs(r.items) {
		ticket := r.items[id]
		vehicle, ok := r.vehicles.items[ticket.VehicleID]
		if !ok || vehicle.CustomerID != customerID {
			continue
		}
		names := []string{}
		if r.mechanics != nil {
			for _, mechanicID := range sortedIDs(r.mechanics.items) {
				if r.assigned[id][mechanicID] {
					names = append(names, r.mechanics.items[mechanicID].Name)
				}
			}
		}
		result = append(result, domain.CustomerTicket{
			Ticket:        *ticket,
			VehicleLabel:  vehicle.Label(),
			MechanicNames: names,
		})
	}
	return result, nil
}

func (r *fakeTicketRepo) AssignMechanic(_ context.Context, ticketID, mechanicID int64) (bool, error) {
	if r.assigned[ticketID] == nil {
		r.assigned[ticketID] = map[int64]bool{}
	}
	if r.assigned[ticketID][mechanicID] {
		return false, nil
	}
	r.assigned[ticketID][mechanicID] = true
	return true, nil
}

func (r *fakeTicketRepo) RemoveMechanic(_ context.Context, ticketID, mechanicID int64) (bool, error) {
	if !r.assigned[ticketID][mechanicID] {
		return false, nil
	}
	delete(r.assigned[ticketID], mechanicID)
	return true, nil
}

func (r *fakeTicketRepo) GetPartLine(_ context.Context, ticketID, partID int64) (*domain.TicketPart, error) {
	quantity, ok := r.partLines[ticketID][partID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	part := r.inventory.items[partID]
	return &domain.TicketPart{
		TicketID: ticketID,
		PartID:   partID,
		Name:     part.Name,
		Price:    part.Price,
		Quantity: quantity,
	}, nil
}

func (r *fakeTicketRepo) UpsertPart(_ context.Context, ticketID, partID int64, quantity int) error {
	if r.partLines[ticketID] == nil {
		r.partLines[ticketID] = map[int64]int{}
	}
	r.partLines[ticketID][partID] += quantity
	return nil
}

func (r *fakeTicketRepo) RemovePart(_ context.Context, ticketID, partID int64) (bool, error) {
	if _, ok := r.partLines[ticketID][partID]; !ok {
		return false, nil
	}
	delete(r.partLines[ticketID], partID)
	return true, nil
}

func (r *fakeTicketRepo) ListParts(_ context.Context, ticketID int64) ([]domain.TicketPart, error) {
	lines := r.partLines[ticketID]
	var result []domain.TicketPart
	for _, partID := range sortedIDs(lines) {
		part := r.inventory.items[partID]
		result = append(result, domain.TicketPart{
			TicketID: ticketID,
			PartID:   partID,
			Name:     part.Name,
			Price:    part.Price,
			Quantity: lines[partID],
		})
	}
	return result, nil
}

// fixture wires the fakes together the way Postgres joins would.
type fixture struct {
	customers *fakeCustomerRepo
	vehicles  *fakeVehicleRepo
	mechanics *fakeMechanicRepo
	tickets   *fakeTicketRepo
	inventory *fakeInventoryRepo
}

func newFixture() *fixture {
	f := &fixture{
		customers: newFakeCustomerRepo(),
		vehicles:  newFakeVehicleRepo(),
		mechanics: newFakeMechanicRepo(),
		tickets:   newFakeTicketRepo(),
		inventory: newFakeInventoryRepo(),
	}
	f.tickets.vehicles = f.vehicles
	f.tickets.mechanics = f.mechanics
	f.tickets.inventory = f.inventory
	f.mechanics.tickets = f.tickets
	return f
}
