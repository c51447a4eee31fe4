package service

import (
	"context"
	"net/http"
	"testing"
)

func seedParts(t *testing.T, svc *InventoryService, names ...string) {
	t.Helper()
	for i, name := range names {
		if _, err := svc.Create(context.Background(), PartCreateInput{Name: name, Price: float64(i+1) * 10}); err != nil {
			t.Fatalf("seed part %q: %v", name, err)
		}
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	f := newFixture()
	svc := NewInventoryService(f.inventory)

	for _, query := range []string{"", "   "} {
		_, _, err := svc.Search(context.Background(), query, 10, 0)
		assertDomainError(t, err, "BAD_REQUEST", http.StatusBadRequest)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture()
	svc := NewInventoryService(f.inventory)
	seedParts(t, svc, "Brake Pad", "Brake Rotor", "Oil Filter")

	parts, total, err := svc.Search(context.Background(), "bRaKe", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 2 || len(parts) != 2 {
		t.Fatalf("expected 2 brake parts, got total=%d len=%d", total, len(parts))
	}
	if parts[0].Name != "Brake Pad" || parts[1].Name != "Brake Rotor" {
		t.Fatalf("unexpected ordering: %+v", parts)
	}
}

func TestSearchPaginationKeepsTotal(t *testing.T) {
	f := newFixture()
	svc := NewInventoryService(f.inventory)
	seedParts(t, svc, "Filter A", "Filter B", "Filter C")

	parts, total, err := svc.Search(context.Background(), "filter", 2, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 3 {
		t.Fatalf("total must count all matches, got %d", total)
	}
	if len(parts) != 1 || parts[0].Name != "Filter C" {
		t.Fatalf("expected last page with Filter C, got %+v", parts)
	}
}

func TestPartUpdatePartial(t *testing.T) {
	f := newFixture()
	svc := NewInventoryService(f.inventory)
	part, err := svc.Create(context.Background(), PartCreateInput{Name: "Brake Pad", Price: 25.5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	price := 27.0
	updated, err := svc.Update(context.Background(), part.ID, PartUpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 27.0 {
		t.Fatalf("expected price updated, got %v", updated.Price)
	}
	if updated.Name != "Brake Pad" {
		t.Fatalf("name must be untouched, got %q", updated.Name)
	}
}

func TestPartDeleteMissing(t *testing.T) {
	f := newFixture()
	svc := NewInventoryService(f.inventory)

	err := svc.Delete(context.Background(), 5)
	assertDomainError(t, err, "NOT_FOUND", http.StatusNotFound)
}
