// Package service contains the reservation transaction coordinator and
// the sentinel errors it reports. Handlers translate these values into
// HTTP responses so that clients can tell "pick different seats" apart
// from "fix your request" and "try again later".
package service

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when no authenticated user identity is
// present on the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidPayload is returned when a required field is missing or
// malformed. Nothing has been mutated when it is reported.
var ErrInvalidPayload = errors.New("invalid payload")

// ErrSeatConflict is returned when one or more requested seats are no
// longer available at claim time. The whole operation is rolled back;
// no partial booking is ever committed.
var ErrSeatConflict = errors.New("seat conflict")

// ErrNotFound is returned when the referenced reservation does not
// exist.
var ErrNotFound = errors.New("reservation not found")

// ErrOwnershipMismatch is returned when seats named in a partial
// cancellation do not currently belong to the reservation being
// modified.
var ErrOwnershipMismatch = errors.New("seats not owned by reservation")

// ErrInvalidRequest is returned for well-formed requests that resolve
// to an empty operation, such as a cancellation matching no seats.
var ErrInvalidRequest = errors.New("nothing to cancel")

// SeatConflictError carries the specific seat ids that were not
// available when a claim was attempted. It unwraps to ErrSeatConflict.
type SeatConflictError struct {
	Unavailable []uint64
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat conflict: %d seat(s) unavailable", len(e.Unavailable))
}

func (e *SeatConflictError) Unwrap() error { return ErrSeatConflict }
