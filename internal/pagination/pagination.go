// Package pagination implements bounds-checked page/per_page extraction and
// the result-set window metadata shared by every listing endpoint.
package pagination

import (
	"fmt"
	"strconv"
)

// Params is a validated page window. Pages are 1-indexed.
type Params struct {
	Page    int
	PerPage int
}

// Error is a pagination parameter violation; it maps to a 400 response.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Parse validates raw page/per_page query values. Empty values fall back to
// page 1 and defaultPerPage; per_page must lie within [1, maxPerPage].
func Parse(pageRaw, perPageRaw string, defaultPerPage, maxPerPage int) (Params, error) {
	page := 1
	if pageRaw != "" {
		parsed, err := strconv.Atoi(pageRaw)
		if err != nil {
			return Params{}, &Error{Message: "Page must be an integer"}
		}
		page = parsed
	}
	if page < 1 {
		return Params{}, &Error{Message: "Page must be >= 1"}
	}

	perPage := defaultPerPage
	if perPageRaw != "" {
		parsed, err := strconv.Atoi(perPageRaw)
		if err != nil {
			return Params{}, &Error{Message: "Per page must be an integer"}
		}
		perPage = parsed
	}
	if perPage < 1 || perPage > maxPerPage {
		return Params{}, &Error{Message: fmt.Sprintf("Per page must be between 1 and %d", maxPerPage)}
	}

	return Params{Page: page, PerPage: perPage}, nil
}

// Offset returns the row offset of the window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta is the pagination block attached to list responses.
type Meta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// MetaFor computes the pagination metadata for a window over total rows.
func (p Params) MetaFor(total int64) Meta {
	pages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	return Meta{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   total,
		Pages:   pages,
		HasNext: p.Page < pages,
		HasPrev: p.Page > 1,
	}
}
