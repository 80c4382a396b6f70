// Package repository contains the read-only data access layer over the
// Sakila schema. Queries are assembled with squirrel and executed on a
// shared *sql.DB pool. Detail lookups return the sentinel errors below when
// no row matches; handlers translate them into HTTP 404 responses.
package repository

import "errors"

// ErrFilmNotFound is returned when no film has the requested id.
var ErrFilmNotFound = errors.New("film not found")

// ErrRentalNotFound is returned when no rental has the requested id.
var ErrRentalNotFound = errors.New("rental not found")

// ErrStoreNotFound is returned when no store has the requested id.
var ErrStoreNotFound = errors.New("store not found")
