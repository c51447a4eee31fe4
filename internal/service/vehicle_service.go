package service

import (
	"context"
	"strings"

	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// VehicleService coordinates vehicle workflows.
type VehicleService struct {
	vehicles  repository.VehicleRepository
	customers repository.CustomerRepository
}

// VehicleDependencies bundles collaborators for the vehicle service.
type VehicleDependencies struct {
	VehicleRepo  repository.VehicleRepository
	CustomerRepo repository.CustomerRepository
}

// VehicleCreateInput describes the creation payload.
type VehicleCreateInput struct {
	CustomerID   int64
	Make         string
	Model        string
	Year         int
	VIN          string
	LicensePlate *string
}

// VehicleUpdateInput carries partial updates; nil means leave unchanged.
type VehicleUpdateInput struct {
	CustomerID   *int64
	Make         *string
	Model        *string
	Year         *int
	VIN          *string
	LicensePlate *string
}

// NewVehicleService constructs the service.
func NewVehicleService(deps VehicleDependencies) *VehicleService {
	return &VehicleService{
		vehicles:  deps.VehicleRepo,
		customers: deps.CustomerRepo,
	}
}

// Create registers a vehicle under an existing customer. VIN and license
// plate uniqueness is enforced by database constraints; pre-checks only
// buy friendlier messages.
func (s *VehicleService) Create(ctx context.Context, input VehicleCreateInput) (*domain.Vehicle, error) {
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("customer", input.CustomerID)
		}
		return nil, err
	}
	if err := s.checkVINFree(ctx, input.VIN, 0); err != nil {
		return nil, err
	}
	plate := normalizePlate(input.LicensePlate)
	if plate != nil {
		if err := s.checkPlateFree(ctx, *plate, 0); err != nil {
			return nil, err
		}
	}

	vehicle := &domain.Vehicle{
		CustomerID:   input.CustomerID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		VIN:          input.VIN,
		LicensePlate: plate,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		if util.IsUniqueViolation(err) {
			return nil, util.NewConflict("vehicle with this VIN or license plate already exists", nil)
		}
		if util.IsForeignKeyViolation(err) {
			return nil, util.NewNotFound("customer", input.CustomerID)
		}
		return nil, err
	}
	return vehicle, nil
}

// Get fetches a vehicle by id.
func (s *VehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("vehicle", id)
		}
		return nil, err
	}
	return vehicle, nil
}

// List returns one page of vehicles with the unfiltered total.
func (s *VehicleService) List(ctx context.Context, limit, offset int) ([]domain.Vehicle, int64, error) {
	vehicles, err := s.vehicles.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vehicles.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// ListByCustomer returns one page of an existing customer's vehicles.
func (s *VehicleService) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Vehicle, int64, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if util.IsNoRows(err) {
			return nil, 0, util.NewNotFound("customer", customerID)
		}
		return nil, 0, err
	}
	vehicles, err := s.vehicles.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vehicles.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// Update applies a partial update, revalidating owner, VIN and plate when
// they change.
func (s *VehicleService) Update(ctx context.Context, id int64, input VehicleUpdateInput) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("vehicle", id)
		}
		return nil, err
	}

	if input.CustomerID != nil && *input.CustomerID != vehicle.CustomerID {
		if _, err := s.customers.GetByID(ctx, *input.CustomerID); err != nil {
			if util.IsNoRows(err) {
				return nil, util.NewNotFound("customer", *input.CustomerID)
			}
			return nil, err
		}
		vehicle.CustomerID = *input.CustomerID
	}
	if input.VIN != nil && *input.VIN != vehicle.VIN {
		if err := s.checkVINFree(ctx, *input.VIN, id); err != nil {
			return nil, err
		}
		vehicle.VIN = *input.VIN
	}
	if input.LicensePlate != nil {
		plate := normalizePlate(input.LicensePlate)
		if plate != nil {
			if err := s.checkPlateFree(ctx, *plate, id); err != nil {
				return nil, err
			}
		}
		vehicle.LicensePlate = plate
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if util.IsUniqueViolation(err) {
			return nil, util.NewConflict("vehicle with this VIN or license plate already exists", nil)
		}
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("vehicle", id)
		}
		return nil, err
	}
	return vehicle, nil
}

// Delete removes the vehicle; its service tickets cascade at the database.
func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("vehicle", id)
		}
		return err
	}
	return nil
}

// normalizePlate maps an empty or blank plate to absent so it is stored
// as NULL and never trips the unique constraint.
func normalizePlate(plate *string) *string {
	if plate == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*plate)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *VehicleService) checkVINFree(ctx context.Context, vin string, selfID int64) error {
	other, err := s.vehicles.GetByVIN(ctx, vin)
	if err != nil {
		if util.IsNoRows(err) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return util.NewConflict("vehicle with this VIN already exists", map[string]any{"vin": vin})
	}
	return nil
}

func (s *VehicleService) checkPlateFree(ctx context.Context, plate string, selfID int64) error {
	other, err := s.vehicles.GetByLicensePlate(ctx, plate)
	if err != nil {
		if util.IsNoRows(err) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return util.NewConflict("vehicle with this license plate already exists", map[string]any{"license_plate": plate})
	}
	return nil
}
