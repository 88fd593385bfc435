package model

import "time"

// CancellationRecord is one append-only audit row describing a single
// cancellation event, partial or full.  Snapshot holds exactly the
// manifest subset that was released by that event; it never changes
// after insert.  The reservation reference is informational only; no
// cascade ties the two rows together.
type CancellationRecord struct {
	ID            uint64       // cancelled_reservations.id
	ReservationID uint64       // cancelled_reservations.reservation_id
	Snapshot      SeatManifest // cancelled_reservations.seat_status (JSON)
	CancelledAt   time.Time    // cancelled_reservations.cancelled_at
}
