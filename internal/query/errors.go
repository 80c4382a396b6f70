// Package query turns loosely-typed request parameters into typed filter,
// sort and page requests, and shapes paginated results. Everything a client
// can get wrong is reported as an *Error; handlers answer those with 400.
package query

import "errors"

// Error is a client mistake in the request parameters. Message is safe to
// show to the caller.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidFilter    = &Error{Message: "Invalid filter format"}
	ErrInvalidSortField = &Error{Message: "Invalid sort field"}
	ErrInvalidSortOrder = &Error{Message: "Invalid sort order"}
	ErrInvalidDate      = &Error{Message: "Invalid date format"}
)

// IsClientError reports whether err carries a query *Error.
func IsClientError(err error) bool {
	var qe *Error
	return errors.As(err, &qe)
}
