package pagination

import (
	"net/http"
	"strconv"
)

// Ellipsis is the non-interactive gap marker within a page window.
// Real page numbers are always >= 1.
const Ellipsis = -1

// maxVisiblePages is the widest window rendered without ellipsis gaps.
const maxVisiblePages = 5

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams returns the storefront defaults: first page, 8 items per page.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: 8,
	}
}

// FromRequest extracts pagination parameters from an HTTP request, falling
// back to defaults for missing or out-of-range values.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 100 {
			p.PerPage = v
		}
	}

	return p
}

// Slice returns the given 1-based page of items, clipped to available bounds.
// An out-of-range page yields an empty slice rather than an error.
func Slice[T any](items []T, perPage, page int) []T {
	if perPage <= 0 || page <= 0 {
		return []T{}
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// PageCount returns ceil(total / perPage); 0 when total is 0.
func PageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}

	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Window produces the compact page-number display for pagination controls:
// all pages when total fits in five slots, otherwise the first page, the last
// page, and the neighborhood of the current page with Ellipsis markers in the
// gaps.
func Window(current, total int) []int {
	if total <= maxVisiblePages {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	var pages []int
	switch {
	case current <= 3:
		// Near the start.
		for i := 1; i <= 4; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, total)
	case current >= total-2:
		// Near the end.
		pages = append(pages, 1, Ellipsis)
		for i := total - 3; i <= total; i++ {
			pages = append(pages, i)
		}
	default:
		// In the middle.
		pages = append(pages, 1, Ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, total)
	}

	return pages
}
