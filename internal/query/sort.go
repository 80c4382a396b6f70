package query

import "strings"

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortFields maps the public sort_field names of one entity to the SQL
// expressions they order by.
type SortFields map[string]string

// Sort is a validated ordering instruction.
type Sort struct {
	Field  string
	Column string
	Order  Order
}

// ParseSort resolves sort_field and sort_order. An empty field means no
// explicit sort and returns nil. The order defaults to asc.
func ParseSort(field, order string, allowed SortFields) (*Sort, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	col, ok := allowed[field]
	if !ok {
		return nil, ErrInvalidSortField
	}
	o := Order(strings.ToLower(strings.TrimSpace(order)))
	switch o {
	case "":
		o = Asc
	case Asc, Desc:
	default:
		return nil, ErrInvalidSortOrder
	}
	return &Sort{Field: field, Column: col, Order: o}, nil
}

// OrderBy returns ORDER BY terms for s followed by the primary key, so that
// pages stay stable when the sort column has duplicates. A nil sort orders
// by the primary key alone.
func OrderBy(s *Sort, pk string) []string {
	tie := pk + " ASC"
	if s == nil {
		return []string{tie}
	}
	clause := s.Column + " " + strings.ToUpper(string(s.Order))
	if s.Column == pk {
		return []string{clause}
	}
	return []string{clause, tie}
}
