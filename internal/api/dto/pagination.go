package dto

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PageParams carries normalized pagination input.
type PageParams struct {
	Page    int
	PerPage int
}

// NormalizePageParams clamps page/per_page to sane bounds: page >= 1,
// per_page defaults to 10 and is capped at 100.
func NormalizePageParams(page, perPage int) PageParams {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the normalized params.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination is the envelope returned alongside every list response.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   *int  `json:"next_page"`
	PrevPage   *int  `json:"prev_page"`
}

// NewPagination computes the envelope for the given params and total count.
func NewPagination(params PageParams, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(params.PerPage) - 1) / int64(params.PerPage))

	p := Pagination{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
	if p.HasNext {
		next := params.Page + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := params.Page - 1
		p.PrevPage = &prev
	}
	return p
}
