// Package repository defines the MySQL data access layer. Sentinel
// errors declared here are shared across repositories so that higher
// layers can distinguish failure scenarios with errors.Is instead of
// inspecting driver errors.
package repository

import "errors"

// ErrHotelNotFound is returned when a hotel lookup yields no rows.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrFloorNotFound is returned when a floor lookup yields no rows.
var ErrFloorNotFound = errors.New("floor not found")

// ErrTableNotFound is returned when a table lookup yields no rows.
var ErrTableNotFound = errors.New("table not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatNotAvailable is returned when a seat mutation requires the
// seat to be AVAILABLE but it is not, e.g. deleting a booked seat.
var ErrSeatNotAvailable = errors.New("seat not available")
