package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations. The seat
// manifest is stored as structured JSON in the seat_manifest column;
// model.SeatManifest handles the column codec, including tolerance for
// rows written by legacy deployments in string form. All timestamp
// fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, user_id, hotel_id, floor_id, customer_name, customer_mobile,
	dining_date, start_time, end_time, seat_manifest, dining_status, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (*model.Reservation, error) {
	var (
		res     model.Reservation
		endTime sql.NullString
	)
	err := row.Scan(
		&res.ID, &res.UserID, &res.HotelID, &res.FloorID, &res.CustomerName, &res.CustomerMobile,
		&res.DiningDate, &res.StartTime, &endTime, &res.Manifest, &res.DiningStatus,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		et := endTime.String
		res.EndTime = &et
	}
	return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction. It populates the generated ID and timestamps on the
// provided record. The caller must commit or roll back the
// transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (user_id, hotel_id, floor_id, customer_name, customer_mobile,
	            dining_date, start_time, end_time, seat_manifest, dining_status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.HotelID, res.FloorID, res.CustomerName, res.CustomerMobile,
		res.DiningDate, res.StartTime, res.EndTime, res.Manifest, res.DiningStatus,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *got
	return nil
}

// GetByIDTx loads a reservation and locks its row for the duration of
// the transaction. Returns sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	return scanReservation(tx.QueryRowContext(ctx, q, id))
}

// GetByID loads a reservation outside any transaction.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

// UpdateManifestTx persists a pruned manifest onto a reservation. The
// manifest is always written in structured form regardless of how the
// row was originally stored.
func (r *ReservationRepo) UpdateManifestTx(ctx context.Context, tx *sql.Tx, id uint64, m model.SeatManifest) error {
	const q = `UPDATE reservations SET seat_manifest = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, m, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetDiningStatusTx updates only the dining status inside a transaction.
func (r *ReservationRepo) SetDiningStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.DiningStatus) error {
	const q = `UPDATE reservations SET dining_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, id)
	return err
}

// SetDiningStatus updates only the dining status. Returns
// sql.ErrNoRows when the reservation does not exist.
func (r *ReservationRepo) SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error {
	const q = `UPDATE reservations SET dining_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByHotel returns all reservations for a hotel ordered by dining
// date descending (newest dining dates first).
func (r *ReservationRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE hotel_id = ?
	      ORDER BY dining_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UserReservationDetail is a reservation enriched with hotel and floor
// summary data for customer-facing listings.
type UserReservationDetail struct {
	ID           uint64             `json:"id"`
	HotelID      uint64             `json:"hotel_id"`
	HotelName    string             `json:"hotel_name"`
	FloorID      uint64             `json:"floor_id"`
	FloorNumber  uint32             `json:"floor_number"`
	DiningDate   string             `json:"dining_date"`
	StartTime    string             `json:"start_time"`
	EndTime      *string            `json:"end_time,omitempty"`
	DiningStatus string             `json:"dining_status"`
	Manifest     model.SeatManifest `json:"seats"`
}

// ListByUser returns the user's reservations joined with hotel and
// floor summaries, newest first. Reservations whose manifest is empty
// are skipped.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]UserReservationDetail, error) {
	const q = `SELECT r.id, r.hotel_id, h.name, r.floor_id, f.floor_number,
	                  r.dining_date, r.start_time, r.end_time, r.seat_manifest, r.dining_status
	           FROM reservations r
	           JOIN hotels h ON h.id = r.hotel_id
	           JOIN floors f ON f.id = r.floor_id
	           WHERE r.user_id = ?
	           ORDER BY r.dining_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]UserReservationDetail, 0)
	for rows.Next() {
		var (
			d       UserReservationDetail
			endTime sql.NullString
			status  model.DiningStatus
		)
		if err := rows.Scan(
			&d.ID, &d.HotelID, &d.HotelName, &d.FloorID, &d.FloorNumber,
			&d.DiningDate, &d.StartTime, &endTime, &d.Manifest, &status,
		); err != nil {
			return nil, err
		}
		if d.Manifest.IsEmpty() {
			continue
		}
		if endTime.Valid {
			et := endTime.String
			d.EndTime = &et
		}
		d.DiningStatus = status.String()
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
