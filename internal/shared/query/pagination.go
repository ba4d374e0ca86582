package query

import (
	"net/url"
	"strconv"

	"nemt-rides/internal/shared/apperrors"
)

// Pager holds the configured pagination bounds.
type Pager struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Pages is a parsed page request. Page may be out of range; out-of-range
// pages resolve to empty result lists with accurate metadata instead of
// errors, so page drift under concurrent writes stays harmless.
type Pages struct {
	Page     int
	PageSize int
}

// Envelope is the list response shape shared by every list endpoint.
type Envelope struct {
	Count    int         `json:"count"`
	Next     *int        `json:"next"`
	Previous *int        `json:"previous"`
	Results  interface{} `json:"results"`
}

// Parse reads page/page_size. Missing values take defaults, an oversize
// page_size is clamped to the maximum, and non-numeric values are a
// ValidationError naming the parameter.
func (p Pager) Parse(params url.Values) (Pages, error) {
	pages := Pages{Page: 1, PageSize: p.DefaultPageSize}

	if v := params.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pages, apperrors.Validation("page", "must be an integer")
		}
		pages.Page = n
	}

	if v := params.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pages, apperrors.Validation("page_size", "must be an integer")
		}
		switch {
		case n < 1:
			pages.PageSize = p.DefaultPageSize
		case n > p.MaxPageSize:
			pages.PageSize = p.MaxPageSize
		default:
			pages.PageSize = n
		}
	}

	return pages, nil
}

// InRange reports whether the page could hold any items given the total.
// Callers skip the row fetch entirely for out-of-range pages. The check
// divides rather than multiplies so absurdly large page numbers cannot
// overflow into a negative offset.
func (p Pages) InRange(total int) bool {
	if p.Page < 1 || total == 0 {
		return false
	}
	return p.Page-1 <= (total-1)/p.PageSize
}

func (p Pages) Limit() int {
	return p.PageSize
}

func (p Pages) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the in-memory slice bounds for a fully materialized
// result set of n items; lo == hi for out-of-range pages. Offset is
// only computed once InRange has bounded it to [0, n).
func (p Pages) Bounds(n int) (int, int) {
	if !p.InRange(n) {
		return n, n
	}
	lo := p.Offset()
	hi := lo + p.PageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}

func (p Pages) totalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Wrap assembles the page envelope around results. Next is null on or
// past the last page; previous is null on or before the first.
func (p Pages) Wrap(total int, results interface{}) Envelope {
	env := Envelope{Count: total, Results: results}

	last := p.totalPages(total)
	if p.Page >= 1 && p.Page < last {
		next := p.Page + 1
		env.Next = &next
	}
	if p.Page > 1 && p.Page-1 <= last {
		prev := p.Page - 1
		env.Previous = &prev
	}

	return env
}
