package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// SeatRepo is the authoritative seat ledger. Plain methods operate on
// the pool; the ...Tx variants run inside a caller-owned transaction
// and are the only path the reservation coordinator uses to mutate
// seat state.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, table_id, seat_number, status, reservation_id, is_active, created_at, updated_at`

func scanSeat(row interface{ Scan(...interface{}) error }) (model.Seat, error) {
	var (
		s     model.Seat
		resID sql.NullInt64
	)
	err := row.Scan(&s.ID, &s.TableID, &s.SeatNumber, &s.Status, &resID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Seat{}, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		s.ReservationID = &id
	}
	return s, nil
}

// placeholders returns a "?,?,?" fragment for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func idArgs(ids []uint64) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// CreateBulk inserts count seats for a table in a single statement,
// numbering them from startNumber. New seats start AVAILABLE.
func (r *SeatRepo) CreateBulk(ctx context.Context, tableID uint64, startNumber uint32, count int) error {
	if count <= 0 {
		return nil
	}
	query := `INSERT INTO seats (table_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, count*3)
	for i := 0; i < count; i++ {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, tableID, startNumber+uint32(i), model.SeatAvailable)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByTable retrieves all seats of a table ordered by seat number.
func (r *SeatRepo) GetByTable(ctx context.Context, tableID uint64) ([]model.Seat, error) {
	q := `SELECT ` + seatColumns + ` FROM seats WHERE table_id = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	q := `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	s, err := scanSeat(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateStatus applies an administrative status change (CLEANING,
// CANCEL, AVAILABLE). BOOKED is reserved for the coordinator: flipping
// a seat to AVAILABLE here also clears any stale reservation
// reference, but a BOOKED seat cannot be touched administratively.
func (r *SeatRepo) UpdateStatus(ctx context.Context, id uint64, status model.SeatStatus) error {
	const q = `UPDATE seats
	           SET status = ?, reservation_id = IF(? = 4, NULL, reservation_id), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status <> 1`
	res, err := r.db.ExecContext(ctx, q, status, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteAvailable removes seats from a table, refusing any seat that
// is not currently AVAILABLE. Booked and transitional seats must be
// released before removal.
func (r *SeatRepo) DeleteAvailable(ctx context.Context, tableID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	q := `SELECT COUNT(*) FROM seats WHERE table_id = ? AND id IN (` + placeholders(len(seatIDs)) + `) AND status = ?`
	args := append([]interface{}{tableID}, idArgs(seatIDs)...)
	args = append(args, model.SeatAvailable)
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return err
	}
	if n != len(seatIDs) {
		return ErrSeatNotAvailable
	}
	del := `DELETE FROM seats WHERE table_id = ? AND id IN (` + placeholders(len(seatIDs)) + `) AND status = ?`
	_, err := r.db.ExecContext(ctx, del, args...)
	return err
}

// FindAvailableTx returns the seats among seatIDs whose status is
// AVAILABLE, locking each returned row for the duration of the
// transaction (FOR UPDATE). Callers compare the returned count with
// the requested count to detect conflicts; no re-validation is done
// elsewhere.
func (r *SeatRepo) FindAvailableTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT ` + seatColumns + ` FROM seats
	      WHERE id IN (` + placeholders(len(seatIDs)) + `) AND status = ?
	      FOR UPDATE`
	args := append(idArgs(seatIDs), model.SeatAvailable)
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LockOwnedTx returns, and locks, the seats among seatIDs that are
// BOOKED and owned by reservationID. A shorter result than seatIDs
// means some seats were never part of, or already left, the
// reservation.
func (r *SeatRepo) LockOwnedTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64, reservationID uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT ` + seatColumns + ` FROM seats
	      WHERE id IN (` + placeholders(len(seatIDs)) + `) AND reservation_id = ? AND status = ?
	      FOR UPDATE`
	args := append(idArgs(seatIDs), reservationID, model.SeatBooked)
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkBookedTx claims seats for a reservation. The WHERE clause keeps
// the AVAILABLE guard even though FindAvailableTx already validated
// the set: rows that drifted inside the transaction are silently
// excluded rather than overwritten.
func (r *SeatRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64, reservationID uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	q := `UPDATE seats
	      SET status = ?, reservation_id = ?, is_active = TRUE, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + placeholders(len(seatIDs)) + `) AND status = ?`
	args := append([]interface{}{model.SeatBooked, reservationID}, idArgs(seatIDs)...)
	args = append(args, model.SeatAvailable)
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// MarkAvailableTx releases seats back to AVAILABLE, guarded by
// ownership so a seat that was reassigned to another reservation is
// never touched.
func (r *SeatRepo) MarkAvailableTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64, reservationID uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	q := `UPDATE seats
	      SET status = ?, reservation_id = NULL, is_active = TRUE, updated_at = CURRENT_TIMESTAMP
	      WHERE id IN (` + placeholders(len(seatIDs)) + `) AND reservation_id = ?`
	args := append([]interface{}{model.SeatAvailable}, idArgs(seatIDs)...)
	args = append(args, reservationID)
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// ReleaseByReservationTx releases every seat owned by reservationID
// regardless of seat status (full cancellation is unconditional) and
// returns the released seat ids.
func (r *SeatRepo) ReleaseByReservationTx(ctx context.Context, tx *sql.Tx, reservationID uint64) ([]uint64, error) {
	const sel = `SELECT id FROM seats WHERE reservation_id = ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, sel, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	const upd = `UPDATE seats
	             SET status = ?, reservation_id = NULL, is_active = TRUE, updated_at = CURRENT_TIMESTAMP
	             WHERE reservation_id = ?`
	if _, err := tx.ExecContext(ctx, upd, model.SeatAvailable, reservationID); err != nil {
		return nil, err
	}
	return ids, nil
}
