package service

import (
	"context"
	"strings"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// Coordinator orchestrates atomic seat-claim and seat-release against
// the seat ledger and the reservation record. All multi-row work runs
// inside a single Store transaction; any failure at any step rolls the
// whole operation back, so no partial booking or half-released
// reservation is ever committed.
type Coordinator struct {
	store Store
}

// NewCoordinator constructs a Coordinator. The store must be non-nil.
func NewCoordinator(store Store) *Coordinator {
	if store == nil {
		panic("nil store passed to NewCoordinator")
	}
	return &Coordinator{store: store}
}

// CreateReservationInput carries everything needed to claim seats.
type CreateReservationInput struct {
	UserID         uint64
	HotelID        uint64
	FloorID        uint64
	Manifest       model.SeatManifest
	CustomerName   string
	CustomerMobile string
	DiningDate     string // YYYY-MM-DD
	StartTime      string // HH:MM
	EndTime        *string
}

// CreateReservation claims every seat named in the manifest for a new
// reservation. Either all requested seats are booked or none are: if
// any seat is no longer AVAILABLE at claim time the transaction is
// aborted with a SeatConflictError naming the unavailable ids.
func (c *Coordinator) CreateReservation(ctx context.Context, in CreateReservationInput) (*model.Reservation, error) {
	if in.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if in.HotelID == 0 || in.FloorID == 0 {
		return nil, ErrInvalidPayload
	}
	if strings.TrimSpace(in.DiningDate) == "" || strings.TrimSpace(in.StartTime) == "" {
		return nil, ErrInvalidPayload
	}
	manifest := in.Manifest.Normalize()
	if len(manifest) == 0 {
		return nil, ErrInvalidPayload
	}
	for _, entry := range manifest {
		if entry.TableID == 0 {
			return nil, ErrInvalidPayload
		}
	}
	seatIDs := manifest.Flatten()
	if len(seatIDs) == 0 {
		return nil, ErrInvalidPayload
	}

	res := &model.Reservation{
		UserID:         in.UserID,
		HotelID:        in.HotelID,
		FloorID:        in.FloorID,
		CustomerName:   strings.TrimSpace(in.CustomerName),
		CustomerMobile: strings.TrimSpace(in.CustomerMobile),
		DiningDate:     in.DiningDate,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Manifest:       manifest,
		DiningStatus:   model.DiningConfirmed,
	}

	err := c.store.WithinTx(ctx, func(tx Tx) error {
		locked, err := tx.FindAvailableSeats(ctx, seatIDs)
		if err != nil {
			return err
		}
		if len(locked) != len(seatIDs) {
			return &SeatConflictError{Unavailable: missingIDs(seatIDs, locked)}
		}
		if err := tx.CreateReservation(ctx, res); err != nil {
			return err
		}
		return tx.MarkSeatsBooked(ctx, seatIDs, res.ID)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CancelSeats removes a subset of seats from a reservation. The seats
// actually matched against the current manifest are released back to
// AVAILABLE, the pruned manifest is persisted, and one audit row
// snapshotting the released subset is appended, all atomically. It
// returns the ids of the seats released.
func (c *Coordinator) CancelSeats(ctx context.Context, reservationID uint64, cancel model.SeatManifest) ([]uint64, error) {
	cancel = cancel.Normalize()
	if len(cancel) == 0 {
		return nil, ErrInvalidRequest
	}

	var released []uint64
	err := c.store.WithinTx(ctx, func(tx Tx) error {
		res, err := tx.GetReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		kept, removed, removedIDs := res.Manifest.Remove(cancel)
		if len(removedIDs) == 0 {
			return ErrInvalidRequest
		}
		// Lock the seats being released and verify they still belong
		// to this reservation; a count mismatch means the manifest and
		// the ledger disagree and the operation must not proceed.
		owned, err := tx.LockOwnedSeats(ctx, removedIDs, reservationID)
		if err != nil {
			return err
		}
		if len(owned) != len(removedIDs) {
			return ErrOwnershipMismatch
		}
		if err := tx.UpdateManifest(ctx, reservationID, kept); err != nil {
			return err
		}
		if err := tx.MarkSeatsAvailable(ctx, removedIDs, reservationID); err != nil {
			return err
		}
		if err := tx.AppendCancellation(ctx, &model.CancellationRecord{
			ReservationID: reservationID,
			Snapshot:      removed,
		}); err != nil {
			return err
		}
		released = removedIDs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

// CancelReservation cancels a reservation outright: every seat the
// reservation owns is released regardless of seat status, one audit
// row snapshotting the full pre-cancellation manifest is appended and
// the dining status flips to CANCELLED. The manifest itself is kept as
// a historical record. Cancelling an already-cancelled reservation is
// a no-op.
func (c *Coordinator) CancelReservation(ctx context.Context, reservationID uint64) error {
	return c.store.WithinTx(ctx, func(tx Tx) error {
		res, err := tx.GetReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if res.DiningStatus == model.DiningCancelled {
			return nil
		}
		snapshot := res.Manifest
		if _, err := tx.ReleaseSeatsByReservation(ctx, reservationID); err != nil {
			return err
		}
		if err := tx.AppendCancellation(ctx, &model.CancellationRecord{
			ReservationID: reservationID,
			Snapshot:      snapshot,
		}); err != nil {
			return err
		}
		return tx.SetDiningStatus(ctx, reservationID, model.DiningCancelled)
	})
}

// UpdateDiningStatus applies a staff-facing lifecycle change. It never
// touches seats and runs outside any seat transaction. Transitions
// follow PENDING → CONFIRMED → SEATED → COMPLETED with CANCELLED
// reachable from any non-terminal state.
func (c *Coordinator) UpdateDiningStatus(ctx context.Context, reservationID uint64, next model.DiningStatus) (model.DiningStatus, error) {
	if !next.Valid() {
		return 0, ErrInvalidPayload
	}
	res, err := c.store.GetReservation(ctx, reservationID)
	if err != nil {
		return 0, err
	}
	if res.DiningStatus == next {
		return next, nil
	}
	if !res.DiningStatus.CanTransition(next) {
		return 0, ErrInvalidRequest
	}
	if err := c.store.SetDiningStatus(ctx, reservationID, next); err != nil {
		return 0, err
	}
	return next, nil
}

// missingIDs returns the members of want absent from the locked seats.
func missingIDs(want []uint64, got []model.Seat) []uint64 {
	have := make(map[uint64]struct{}, len(got))
	for _, s := range got {
		have[s.ID] = struct{}{}
	}
	out := make([]uint64, 0, len(want)-len(got))
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
