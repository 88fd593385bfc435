package model

import (
	"fmt"
	"time"
)

// SeatStatus is the canonical availability state of a seat.  The
// numeric codes match the values stored in the `seats.status` column.
// Some legacy deployments exposed a boolean is_booked flag instead;
// that projection maps onto BOOKED/AVAILABLE and is not modelled here.
type SeatStatus uint8

const (
	SeatBooked    SeatStatus = 1 // claimed by a reservation
	SeatCancel    SeatStatus = 2 // released, pending staff review
	SeatCleaning  SeatStatus = 3 // blocked for cleaning
	SeatAvailable SeatStatus = 4 // free to claim
)

// Valid reports whether s is one of the defined status codes.
func (s SeatStatus) Valid() bool {
	return s >= SeatBooked && s <= SeatAvailable
}

// String returns the upper-case name used in API payloads.
func (s SeatStatus) String() string {
	switch s {
	case SeatBooked:
		return "BOOKED"
	case SeatCancel:
		return "CANCEL"
	case SeatCleaning:
		return "CLEANING"
	case SeatAvailable:
		return "AVAILABLE"
	}
	return fmt.Sprintf("SeatStatus(%d)", uint8(s))
}

// ParseSeatStatus converts an API status name into a SeatStatus.
func ParseSeatStatus(name string) (SeatStatus, bool) {
	switch name {
	case "BOOKED":
		return SeatBooked, true
	case "CANCEL":
		return SeatCancel, true
	case "CLEANING":
		return SeatCleaning, true
	case "AVAILABLE":
		return SeatAvailable, true
	}
	return 0, false
}

// Seat describes a single seat at a table.  Seats are uniquely
// identified by their (table, seat number) pair.  ReservationID is a
// weak back-reference: it records which reservation currently holds
// the seat and must be non-nil exactly when Status is BOOKED.
//
// Fields:
//  ID            – primary key identifier.
//  TableID       – table to which this seat belongs.
//  SeatNumber    – position of the seat at the table (1-based).
//  Status        – current availability state.
//  ReservationID – reservation holding the seat (nil unless booked).
//  IsActive      – soft availability flag (not reservation state).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Seat struct {
	ID            uint64     // seats.id
	TableID       uint64     // seats.table_id
	SeatNumber    uint32     // seats.seat_number
	Status        SeatStatus // seats.status
	ReservationID *uint64    // seats.reservation_id (nullable)
	IsActive      bool       // seats.is_active
	CreatedAt     time.Time  // seats.created_at
	UpdatedAt     time.Time  // seats.updated_at
}
