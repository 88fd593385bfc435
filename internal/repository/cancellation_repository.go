package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// CancellationRepo is the append-only cancellation ledger. The only
// write path is InsertTx, called from inside the coordinator's
// transaction; no update or delete is exposed.
type CancellationRepo struct {
	db *sql.DB
}

// NewCancellationRepo constructs a CancellationRepo with the given DB handle.
func NewCancellationRepo(db *sql.DB) *CancellationRepo {
	return &CancellationRepo{db: db}
}

// InsertTx appends one cancellation record within an existing
// transaction, populating the generated ID and timestamp.
func (r *CancellationRepo) InsertTx(ctx context.Context, tx *sql.Tx, rec *model.CancellationRecord) error {
	const q = `INSERT INTO cancelled_reservations (reservation_id, seat_status) VALUES (?, ?)`
	result, err := tx.ExecContext(ctx, q, rec.ReservationID, rec.Snapshot)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	const sel = `SELECT cancelled_at FROM cancelled_reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.CancelledAt)
}

// ListByReservation returns every cancellation event recorded for a
// reservation, oldest first. Used by audit and dispute views only; it
// plays no part in seat availability.
func (r *CancellationRepo) ListByReservation(ctx context.Context, reservationID uint64) ([]model.CancellationRecord, error) {
	const q = `SELECT id, reservation_id, seat_status, cancelled_at
	           FROM cancelled_reservations
	           WHERE reservation_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.CancellationRecord, 0)
	for rows.Next() {
		var rec model.CancellationRecord
		if err := rows.Scan(&rec.ID, &rec.ReservationID, &rec.Snapshot, &rec.CancelledAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
