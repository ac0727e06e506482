// Package pagination normalizes page/per_page query values and computes the
// page metadata returned by list endpoints.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

// Params is a validated page request. Page is 1-based.
type Params struct {
	Page    int
	PerPage int
}

// Meta describes a page within a collection of TotalItems.
type Meta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Validate parses raw query values. Missing or non-numeric input falls back to
// page 1 and defaultPerPage; page is clamped to >= 1 and per_page to
// [1, maxPerPage]. It never fails.
func Validate(pageRaw, perPageRaw string, defaultPerPage, maxPerPage int) Params {
	if maxPerPage < 1 {
		maxPerPage = 1
	}

	page, err := strconv.Atoi(strings.TrimSpace(pageRaw))
	if err != nil {
		page = 1
	}
	perPage, err := strconv.Atoi(strings.TrimSpace(perPageRaw))
	if err != nil {
		perPage = defaultPerPage
	}

	return Params{
		Page:    max(page, 1),
		PerPage: min(max(perPage, 1), maxPerPage),
	}
}

// Offset is the number of rows to skip for p. Pages far beyond any real
// collection saturate instead of overflowing.
func Offset(p Params) int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt32/p.PerPage {
		return math.MaxInt32
	}
	return (p.Page - 1) * p.PerPage
}

// NewMeta computes the metadata for page p of a collection with total items.
// An empty collection has zero pages.
func NewMeta(p Params, total int) Meta {
	pages := 0
	if total > 0 && p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
