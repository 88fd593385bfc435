package service

import (
	"context"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// Store is the durable backend the coordinator drives. WithinTx runs
// fn inside a single atomic transaction: if fn returns an error the
// transaction is rolled back and the error propagated; otherwise it is
// committed. Every mutation performed through the Tx is invisible
// outside the transaction until commit.
//
// The SQL implementation lives in the repository package; tests use an
// in-memory implementation.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// GetReservation loads a reservation outside any transaction.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// SetDiningStatus updates only the dining status of a reservation.
	SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error
}

// Tx is the transaction-scoped view of the store. All seat reads take
// row-level write locks (SELECT ... FOR UPDATE semantics) so that two
// concurrent transactions can never both observe the same seat as
// claimable. Lock scope is exactly the seat rows named in each call.
type Tx interface {
	// FindAvailableSeats returns, and locks, the seats among seatIDs
	// whose status is currently AVAILABLE.
	FindAvailableSeats(ctx context.Context, seatIDs []uint64) ([]model.Seat, error)
	// LockOwnedSeats returns, and locks, the seats among seatIDs that
	// are BOOKED and owned by reservationID.
	LockOwnedSeats(ctx context.Context, seatIDs []uint64, reservationID uint64) ([]model.Seat, error)
	// MarkSeatsBooked flips seats to BOOKED with the given owning
	// reservation, guarded by status = AVAILABLE.
	MarkSeatsBooked(ctx context.Context, seatIDs []uint64, reservationID uint64) error
	// MarkSeatsAvailable releases seats back to AVAILABLE, guarded by
	// ownership: only rows whose reservation_id equals reservationID
	// are touched.
	MarkSeatsAvailable(ctx context.Context, seatIDs []uint64, reservationID uint64) error
	// ReleaseSeatsByReservation releases every seat owned by
	// reservationID regardless of status and returns the released ids.
	ReleaseSeatsByReservation(ctx context.Context, reservationID uint64) ([]uint64, error)

	// CreateReservation inserts a reservation row and populates its ID.
	CreateReservation(ctx context.Context, res *model.Reservation) error
	// GetReservation loads, and locks, a reservation row.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// UpdateManifest persists a pruned manifest onto a reservation.
	UpdateManifest(ctx context.Context, id uint64, m model.SeatManifest) error
	// SetDiningStatus updates the dining status inside the transaction.
	SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error

	// AppendCancellation inserts one audit row. The audit trail is
	// append-only; no update or delete is ever exposed.
	AppendCancellation(ctx context.Context, rec *model.CancellationRecord) error
}
