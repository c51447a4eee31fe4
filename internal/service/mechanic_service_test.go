package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/mechanic-shop/internal/domain"
)

func TestTopPerformersOrdering(t *testing.T) {
	f := newFixture()
	_, ticketA := seedTicketFixture(t, f)
	busy := seedMechanic(t, f, "Busy")
	medium := seedMechanic(t, f, "Medium")
	idle := seedMechanic(t, f, "Idle")
	ctx := context.Background()

	ticketB := seedSecondTicket(t, f)

	for _, ticketID := range []int64{ticketA.ID, ticketB} {
		if _, err := f.tickets.AssignMechanic(ctx, ticketID, busy.ID); err != nil {
			t.Fatalf("seed assignment: %v", err)
		}
	}
	if _, err := f.tickets.AssignMechanic(ctx, ticketA.ID, medium.ID); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	svc := NewMechanicService(f.mechanics)
	perfs, err := svc.TopPerformers(ctx)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}

	if len(perfs) != 3 {
		t.Fatalf("expected all 3 mechanics, got %d", len(perfs))
	}
	wantOrder := []int64{busy.ID, medium.ID, idle.ID}
	wantCounts := []int64{2, 1, 0}
	for i := range perfs {
		if perfs[i].ID != wantOrder[i] || perfs[i].TicketCount != wantCounts[i] {
			t.Fatalf("position %d: got id=%d count=%d, want id=%d count=%d",
				i, perfs[i].ID, perfs[i].TicketCount, wantOrder[i], wantCounts[i])
		}
	}
}

func seedSecondTicket(t *testing.T, f *fixture) int64 {
	t.Helper()
	vehicle, err := f.vehicles.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("fixture vehicle: %v", err)
	}
	second := &domain.ServiceTicket{VehicleID: vehicle.ID, Description: "alignment", Status: domain.TicketStatusOpen}
	if err := f.tickets.Create(context.Background(), second); err != nil {
		t.Fatalf("seed second ticket: %v", err)
	}
	return second.ID
}

func TestMechanicUpdatePartial(t *testing.T) {
	f := newFixture()
	mechanic := seedMechanic(t, f, "Kim")
	svc := NewMechanicService(f.mechanics)

	salary := 61000.0
	updated, err := svc.Update(context.Background(), mechanic.ID, MechanicUpdateInput{Salary: &salary})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Salary != 61000 {
		t.Fatalf("expected salary updated, got %v", updated.Salary)
	}
	if updated.Name != "Kim" {
		t.Fatalf("name must be untouched, got %q", updated.Name)
	}
}

func TestMechanicDeleteMissing(t *testing.T) {
	f := newFixture()
	svc := NewMechanicService(f.mechanics)

	err := svc.Delete(context.Background(), 7)
	assertDomainError(t, err, "NOT_FOUND", http.StatusNotFound)
}
