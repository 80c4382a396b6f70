package query

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a 1-based page request. Page and Limit are always >= 1 once
// produced by ParsePage.
type Page struct {
	Page  int
	Limit int
}

// ParsePage reads the page and limit parameters. Missing, non-numeric and
// non-positive values fall back to the defaults so the offset is never
// negative. There is no upper bound on limit; page is clamped so that
// (page-1)*limit still fits in an int64.
func ParsePage(page, limit string) Page {
	p := Page{
		Page:  positiveOr(page, DefaultPage),
		Limit: positiveOr(limit, DefaultLimit),
	}
	if maxPage := math.MaxInt64/int64(p.Limit) + 1; int64(p.Page) > maxPage {
		p.Page = int(maxPage)
	}
	return p
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Offset is the number of rows skipped: (page-1)*limit.
func (p Page) Offset() uint64 { return uint64(p.Page-1) * uint64(p.Limit) }

// Take is the number of rows fetched.
func (p Page) Take() uint64 { return uint64(p.Limit) }

// Pagination is the metadata block of a paginated response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// Result is the {data, pagination} envelope returned by list endpoints.
type Result[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewResult wraps one page of rows with the total row count.
func NewResult[T any](rows []T, total int64, p Page) Result[T] {
	if rows == nil {
		rows = []T{}
	}
	return Result[T]{
		Data: rows,
		Pagination: Pagination{
			Total:      total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: TotalPages(total, p.Limit),
		},
	}
}

// TotalPages is ceil(total/limit) in integer arithmetic, without the
// overflow of (total+limit-1)/limit for huge limits.
func TotalPages(total int64, limit int) int64 {
	if limit < 1 || total <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}

// List is the unpaginated {data, total} envelope of the lookup endpoints.
type List[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// NewList wraps rows and counts them.
func NewList[T any](rows []T) List[T] {
	if rows == nil {
		rows = []T{}
	}
	return List[T]{Data: rows, Total: len(rows)}
}
