package dto

import "testing"

func TestNormalizePageParams(t *testing.T) {
	cases := []struct {
		name          string
		page, perPage int
		wantPage      int
		wantPerPage   int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 25, 1, 25},
		{"cap per_page", 2, 500, 2, 100},
		{"passthrough", 4, 50, 4, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizePageParams(tc.page, tc.perPage)
			if got.Page != tc.wantPage || got.PerPage != tc.wantPerPage {
				t.Fatalf("got %+v, want page=%d per_page=%d", got, tc.wantPage, tc.wantPerPage)
			}
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	p := NormalizePageParams(3, 10)
	if p.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(PageParams{Page: 2, PerPage: 10}, 25)
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("expected both neighbors, got %+v", p)
	}
	if p.NextPage == nil || *p.NextPage != 3 {
		t.Fatalf("expected next page 3, got %v", p.NextPage)
	}
	if p.PrevPage == nil || *p.PrevPage != 1 {
		t.Fatalf("expected prev page 1, got %v", p.PrevPage)
	}
}

func TestNewPaginationPastLastPage(t *testing.T) {
	// Requesting beyond the last page yields an empty page, never an error.
	p := NewPagination(PageParams{Page: 9, PerPage: 10}, 25)
	if p.HasNext {
		t.Fatal("expected has_next=false past the last page")
	}
	if !p.HasPrev {
		t.Fatal("expected has_prev=true past the first page")
	}
	if p.NextPage != nil {
		t.Fatalf("expected nil next_page, got %v", *p.NextPage)
	}
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(PageParams{Page: 1, PerPage: 10}, 0)
	if p.TotalPages != 0 || p.HasNext || p.HasPrev {
		t.Fatalf("unexpected envelope for empty set: %+v", p)
	}
}
