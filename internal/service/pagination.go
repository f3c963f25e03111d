package service

import (
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

// paginationFor returns the backend's pagination block, or one derived from
// the request when the backend left it out. The derived block only knows
// what this page shows: the count is the page's own length, and a full page
// is assumed to have a successor.
func paginationFor(p query.Params, n int, given *domain.Pagination) domain.Pagination {
	if given != nil {
		return *given
	}
	hasNext := n >= p.Limit && p.Limit > 0
	pages := p.Page
	if hasNext {
		pages++
	}
	return domain.Pagination{
		CurrentPage: p.Page,
		PerPage:     p.Limit,
		TotalPages:  pages,
		TotalCount:  n,
		HasNextPage: hasNext,
		HasPrevPage: p.Page > 1,
	}
}
