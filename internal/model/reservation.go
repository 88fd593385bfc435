package model

import (
	"fmt"
	"time"
)

// DiningStatus is the lifecycle stage of a reservation, distinct from
// per-seat booking state.  The numeric codes match the
// `reservations.dining_status` column.
type DiningStatus uint8

const (
	DiningPending   DiningStatus = 0
	DiningConfirmed DiningStatus = 1
	DiningSeated    DiningStatus = 2
	DiningCompleted DiningStatus = 3
	DiningCancelled DiningStatus = 4
)

// Valid reports whether s is one of the defined status codes.
func (s DiningStatus) Valid() bool {
	return s <= DiningCancelled
}

// Terminal reports whether no further transition is allowed from s.
func (s DiningStatus) Terminal() bool {
	return s == DiningCompleted || s == DiningCancelled
}

// CanTransition reports whether moving from s to next is allowed.
// PENDING → CONFIRMED → SEATED → COMPLETED, with CANCELLED reachable
// from any non-terminal state.
func (s DiningStatus) CanTransition(next DiningStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == DiningCancelled {
		return true
	}
	return next == s+1
}

// String returns the upper-case name used in API payloads.
func (s DiningStatus) String() string {
	switch s {
	case DiningPending:
		return "PENDING"
	case DiningConfirmed:
		return "CONFIRMED"
	case DiningSeated:
		return "SEATED"
	case DiningCompleted:
		return "COMPLETED"
	case DiningCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("DiningStatus(%d)", uint8(s))
}

// ParseDiningStatus converts an API status name into a DiningStatus.
func ParseDiningStatus(name string) (DiningStatus, bool) {
	switch name {
	case "PENDING":
		return DiningPending, true
	case "CONFIRMED":
		return DiningConfirmed, true
	case "SEATED":
		return DiningSeated, true
	case "COMPLETED":
		return DiningCompleted, true
	case "CANCELLED":
		return DiningCancelled, true
	}
	return 0, false
}

// Reservation records a booking of one or more seats across one or
// more tables of a hotel floor.  The manifest is the authoritative
// description of which seats the reservation claims; the seat ledger
// mirrors it via each seat's reservation back-reference.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – user who made the reservation.
//  HotelID        – hotel being reserved.
//  FloorID        – floor the seats are on.
//  CustomerName   – display name for the party.
//  CustomerMobile – contact number for the party.
//  DiningDate     – calendar date of the booking.
//  StartTime      – requested arrival time (HH:MM).
//  EndTime        – optional departure time.
//  Manifest       – seats claimed, grouped by table.
//  DiningStatus   – lifecycle stage of the visit.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Reservation struct {
	ID             uint64       // reservations.id
	UserID         uint64       // reservations.user_id
	HotelID        uint64       // reservations.hotel_id
	FloorID        uint64       // reservations.floor_id
	CustomerName   string       // reservations.customer_name
	CustomerMobile string       // reservations.customer_mobile
	DiningDate     string       // reservations.dining_date (YYYY-MM-DD)
	StartTime      string       // reservations.start_time (HH:MM)
	EndTime        *string      // reservations.end_time (nullable)
	Manifest       SeatManifest // reservations.seat_manifest (JSON)
	DiningStatus   DiningStatus // reservations.dining_status
	CreatedAt      time.Time    // reservations.created_at
	UpdatedAt      time.Time    // reservations.updated_at
}
