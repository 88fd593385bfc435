package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

// Store implements service.Store on MySQL. WithinTx owns the whole
// transaction lifecycle (begin, run, commit, rollback on error) so the
// coordinator never sees *sql.Tx directly.
type Store struct {
	db            *sql.DB
	seats         *SeatRepo
	reservations  *ReservationRepo
	cancellations *CancellationRepo
}

// NewStore constructs a Store over the shared DB handle and repositories.
func NewStore(db *sql.DB, seats *SeatRepo, reservations *ReservationRepo, cancellations *CancellationRepo) *Store {
	if db == nil || seats == nil || reservations == nil || cancellations == nil {
		panic("nil dependency passed to NewStore")
	}
	return &Store{db: db, seats: seats, reservations: reservations, cancellations: cancellations}
}

// WithinTx runs fn inside a single transaction. If fn returns an
// error, or the client aborts mid-request, the transaction rolls back
// entirely: no seat is left half-updated and no reservation row is
// left referencing unbooked seats.
func (s *Store) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&storeTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

// GetReservation loads a reservation outside any transaction.
func (s *Store) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// SetDiningStatus updates only the dining status of a reservation.
func (s *Store) SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error {
	if err := s.reservations.SetDiningStatus(ctx, id, status); err != nil {
		if err == sql.ErrNoRows {
			return service.ErrNotFound
		}
		return err
	}
	return nil
}

// storeTx is the transaction-scoped view handed to the coordinator.
type storeTx struct {
	store *Store
	tx    *sql.Tx
}

func (t *storeTx) FindAvailableSeats(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	return t.store.seats.FindAvailableTx(ctx, t.tx, seatIDs)
}

func (t *storeTx) LockOwnedSeats(ctx context.Context, seatIDs []uint64, reservationID uint64) ([]model.Seat, error) {
	return t.store.seats.LockOwnedTx(ctx, t.tx, seatIDs, reservationID)
}

func (t *storeTx) MarkSeatsBooked(ctx context.Context, seatIDs []uint64, reservationID uint64) error {
	return t.store.seats.MarkBookedTx(ctx, t.tx, seatIDs, reservationID)
}

func (t *storeTx) MarkSeatsAvailable(ctx context.Context, seatIDs []uint64, reservationID uint64) error {
	return t.store.seats.MarkAvailableTx(ctx, t.tx, seatIDs, reservationID)
}

func (t *storeTx) ReleaseSeatsByReservation(ctx context.Context, reservationID uint64) ([]uint64, error) {
	return t.store.seats.ReleaseByReservationTx(ctx, t.tx, reservationID)
}

func (t *storeTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	return t.store.reservations.CreateTx(ctx, t.tx, res)
}

func (t *storeTx) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := t.store.reservations.GetByIDTx(ctx, t.tx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (t *storeTx) UpdateManifest(ctx context.Context, id uint64, m model.SeatManifest) error {
	err := t.store.reservations.UpdateManifestTx(ctx, t.tx, id, m)
	if err == sql.ErrNoRows {
		return service.ErrNotFound
	}
	return err
}

func (t *storeTx) SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error {
	return t.store.reservations.SetDiningStatusTx(ctx, t.tx, id, status)
}

func (t *storeTx) AppendCancellation(ctx context.Context, rec *model.CancellationRecord) error {
	return t.store.cancellations.InsertTx(ctx, t.tx, rec)
}
