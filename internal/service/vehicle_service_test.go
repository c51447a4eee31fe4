package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

func newVehicleService(f *fixture) *VehicleService {
	return NewVehicleService(VehicleDependencies{
		VehicleRepo:  f.vehicles,
		CustomerRepo: f.customers,
	})
}

func seedCustomer(t *testing.T, f *fixture, email string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{Name: "Ada", Phone: "5550001111", Email: email, Address: "12 Engine St", PasswordHash: "x"}
	if err := f.customers.Create(context.Background(), customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func TestCreateVehicleUnknownCustomer(t *testing.T) {
	f := newFixture()
	svc := newVehicleService(f)

	_, err := svc.Create(context.Background(), VehicleCreateInput{
		CustomerID: 77,
		Make:       "Toyota",
		Model:      "Corolla",
		Year:       2020,
		VIN:        "1HGBH41JXMN109186",
	})
	assertDomainError(t, err, "NOT_FOUND", http.StatusNotFound)
}

func TestCreateVehicleDuplicateVIN(t *testing.T) {
	f := newFixture()
	customer := seedCustomer(t, f, "ada@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	input := VehicleCreateInput{
		CustomerID: customer.ID,
		Make:       "Toyota",
		Model:      "Corolla",
		Year:       2020,
		VIN:        "1HGBH41JXMN109186",
	}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	input.Model = "Camry"
	_, err := svc.Create(ctx, input)
	assertDomainError(t, err, "CONFLICT", http.StatusConflict)
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	f := newFixture()
	customer := seedCustomer(t, f, "ada@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	plate := "ABC-1234"
	if _, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID:   customer.ID,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		VIN:          "1HGBH41JXMN109186",
		LicensePlate: &plate,
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID:   customer.ID,
		Make:         "Honda",
		Model:        "Civic",
		Year:         2019,
		VIN:          "2HGBH41JXMN109187",
		LicensePlate: &plate,
	})
	assertDomainError(t, err, "CONFLICT", http.StatusConflict)
}

func TestCreateVehicleEmptyPlateStoredAsAbsent(t *testing.T) {
	f := newFixture()
	customer := seedCustomer(t, f, "ada@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	// Two vehicles with explicitly empty plates must not collide on the
	// unique constraint; both land as absent.
	empty := ""
	first, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Toyota", Model: "Corolla", Year: 2020,
		VIN: "1HGBH41JXMN109186", LicensePlate: &empty,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.LicensePlate != nil {
		t.Fatalf("empty plate must be stored as absent, got %q", *first.LicensePlate)
	}

	blank := "   "
	second, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Honda", Model: "Civic", Year: 2019,
		VIN: "2HGBH41JXMN109187", LicensePlate: &blank,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.LicensePlate != nil {
		t.Fatalf("blank plate must be stored as absent, got %q", *second.LicensePlate)
	}
}

func TestUpdateVehicleEmptyPlateClearsIt(t *testing.T) {
	f := newFixture()
	customer := seedCustomer(t, f, "ada@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	plate := "ABC-1234"
	vehicle, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Toyota", Model: "Corolla", Year: 2020,
		VIN: "1HGBH41JXMN109186", LicensePlate: &plate,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	empty := ""
	updated, err := svc.Update(ctx, vehicle.ID, VehicleUpdateInput{LicensePlate: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.LicensePlate != nil {
		t.Fatalf("expected plate cleared, got %q", *updated.LicensePlate)
	}

	// The freed plate is reusable by another vehicle.
	if _, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Honda", Model: "Civic", Year: 2019,
		VIN: "2HGBH41JXMN109187", LicensePlate: &plate,
	}); err != nil {
		t.Fatalf("reuse of cleared plate: %v", err)
	}
}

func TestUpdateVehicleVINTakenByOther(t *testing.T) {
	f := newFixture()
	customer := seedCustomer(t, f, "ada@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	first, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Toyota", Model: "Corolla", Year: 2020, VIN: "1HGBH41JXMN109186",
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, VehicleCreateInput{
		CustomerID: customer.ID, Make: "Honda", Model: "Civic", Year: 2019, VIN: "2HGBH41JXMN109187",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	taken := first.VIN
	_, err = svc.Update(ctx, second.ID, VehicleUpdateInput{VIN: &taken})
	assertDomainError(t, err, "CONFLICT", http.StatusConflict)

	// Resubmitting a vehicle's own VIN is not a conflict.
	same := second.VIN
	if _, err := svc.Update(ctx, second.ID, VehicleUpdateInput{VIN: &same}); err != nil {
		t.Fatalf("self VIN update: %v", err)
	}
}

func TestListByCustomerUnknownCustomer(t *testing.T) {
	f := newFixture()
	svc := newVehicleService(f)

	_, _, err := svc.ListByCustomer(context.Background(), 404, 10, 0)
	assertDomainError(t, err, "NOT_FOUND", http.StatusNotFound)
}

func TestListByCustomerScopedToOwner(t *testing.T) {
	f := newFixture()
	ada := seedCustomer(t, f, "ada@example.com")
	eve := seedCustomer(t, f, "eve@example.com")
	svc := newVehicleService(f)
	ctx := context.Background()

	if _, err := svc.Create(ctx, VehicleCreateInput{CustomerID: ada.ID, Make: "Toyota", Model: "Corolla", Year: 2020, VIN: "1HGBH41JXMN109186"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, VehicleCreateInput{CustomerID: ada.ID, Make: "Toyota", Model: "Hilux", Year: 2021, VIN: "3HGBH41JXMN109188"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, VehicleCreateInput{CustomerID: eve.ID, Make: "Honda", Model: "Civic", Year: 2019, VIN: "2HGBH41JXMN109187"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	vehicles, total, err := svc.ListByCustomer(ctx, ada.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByCustomer: %v", err)
	}
	if total != 2 || len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles for ada, got total=%d len=%d", total, len(vehicles))
	}
	for _, vehicle := range vehicles {
		if vehicle.CustomerID != ada.ID {
			t.Fatalf("foreign vehicle leaked: %+v", vehicle)
		}
	}
}

func TestDeleteVehicleMissing(t *testing.T) {
	f := newFixture()
	svc := newVehicleService(f)

	err := svc.Delete(context.Background(), 9)
	assertDomainError(t, err, "NOT_FOUND", http.StatusNotFound)
}
